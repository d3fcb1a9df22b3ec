package profile

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type Field string

const (
	FieldDevelopment Field = "DEVELOPMENT"
	FieldProduct     Field = "PRODUCT"
	FieldDesign      Field = "DESIGN"
	FieldOperations  Field = "OPERATIONS"
	FieldHardware    Field = "HARDWARE"
	FieldSales       Field = "SALES"
	FieldResearch    Field = "RESEARCH"
	FieldMedia       Field = "MEDIA"
	FieldConsulting  Field = "CONSULTING"
	FieldInvestment  Field = "INVESTMENT"
	FieldStudent     Field = "STUDENT"
	FieldArt         Field = "ART"
	FieldLegal       Field = "LEGAL"
	FieldTeaching    Field = "TEACHING"
	FieldOther       Field = "OTHER"
)

func (f Field) Valid() bool {
	switch f {
	case FieldDevelopment, FieldProduct, FieldDesign, FieldOperations,
		FieldHardware, FieldSales, FieldResearch, FieldMedia,
		FieldConsulting, FieldInvestment, FieldStudent, FieldArt,
		FieldLegal, FieldTeaching, FieldOther:
		return true
	}
	return false
}

type Status string

const (
	StatusEmployed   Status = "EMPLOYED"
	StatusStartup    Status = "STARTUP"
	StatusFreelance  Status = "FREELANCE"
	StatusJobSeeking Status = "JOB_SEEKING"
	StatusStudent    Status = "STUDENT"
	StatusOther      Status = "OTHER"
)

func (s Status) Valid() bool {
	switch s {
	case StatusEmployed, StatusStartup, StatusFreelance,
		StatusJobSeeking, StatusStudent, StatusOther:
		return true
	}
	return false
}

type Platform string

const (
	PlatformGithub   Platform = "github"
	PlatformTwitter  Platform = "twitter"
	PlatformLinkedin Platform = "linkedin"
	PlatformWebsite  Platform = "website"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformGithub, PlatformTwitter, PlatformLinkedin, PlatformWebsite:
		return true
	}
	return false
}
