package profile

// ComputeLevel classifies a member into an engagement tier from the counts
// of their event registrations and projects. Later rule wins: any project
// outranks any number of registrations.
func ComputeLevel(registrations, projects int) int {
	level := 0
	if registrations > 0 {
		level = 1
	}
	if projects > 0 {
		level = 2
	}
	return level
}
