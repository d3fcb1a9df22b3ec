package http

import (
	"time"

	"github.com/google/uuid"

	profileUC "github.com/Jackiexiao/hackclub/internal/application/usecase/profile"
	"github.com/Jackiexiao/hackclub/internal/domain/club"
	"github.com/Jackiexiao/hackclub/internal/domain/profile"
)

// Update payload. Pointer-to-slice distinguishes an absent collection (leave
// it alone) from an empty one (clear it).
type SocialLinkRequest struct {
	Platform string `json:"platform" binding:"required,oneof=github twitter linkedin website"`
	URL      string `json:"url" binding:"required,url"`
}

type ProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,url"`
	ProjectURL  *string `json:"projectUrl" binding:"omitempty,url"`
}

type UpdateProfileRequest struct {
	ClubID      *uuid.UUID           `json:"clubId" binding:"omitempty"`
	RealName    string               `json:"realName" binding:"required"`
	PhoneNumber *string              `json:"phoneNumber"`
	Nickname    *string              `json:"nickname"`
	Wechat      *string              `json:"wechat"`
	SelfIntro   *string              `json:"selfIntro"`
	Gender      *string              `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	Occupation  *string              `json:"occupation"`
	Field       *string              `json:"field" binding:"omitempty,oneof=DEVELOPMENT PRODUCT DESIGN OPERATIONS HARDWARE SALES RESEARCH MEDIA CONSULTING INVESTMENT STUDENT ART LEGAL TEACHING OTHER"`
	Status      *string              `json:"status" binding:"omitempty,oneof=EMPLOYED STARTUP FREELANCE JOB_SEEKING STUDENT OTHER"`
	Resources   *string              `json:"resources"`
	HelpNeeded  *string              `json:"helpNeeded"`
	SocialLinks *[]SocialLinkRequest `json:"socialLinks" binding:"omitempty,dive"`
	Projects    *[]ProjectRequest    `json:"projects" binding:"omitempty,dive"`
}

func (req *UpdateProfileRequest) ToInput(userID uuid.UUID) profileUC.UpdateProfileInput {
	input := profileUC.UpdateProfileInput{
		UserID:      userID,
		ClubID:      req.ClubID,
		RealName:    req.RealName,
		Nickname:    req.Nickname,
		PhoneNumber: req.PhoneNumber,
		Wechat:      req.Wechat,
		SelfIntro:   req.SelfIntro,
		Occupation:  req.Occupation,
		Resources:   req.Resources,
		HelpNeeded:  req.HelpNeeded,
	}

	if req.Gender != nil {
		g := profile.Gender(*req.Gender)
		input.Gender = &g
	}
	if req.Field != nil {
		f := profile.Field(*req.Field)
		input.Field = &f
	}
	if req.Status != nil {
		s := profile.Status(*req.Status)
		input.Status = &s
	}

	if req.SocialLinks != nil {
		links := make([]profileUC.SocialLinkInput, 0, len(*req.SocialLinks))
		for _, l := range *req.SocialLinks {
			links = append(links, profileUC.SocialLinkInput{Platform: l.Platform, URL: l.URL})
		}
		input.SocialLinks = links
	}
	if req.Projects != nil {
		projects := make([]profileUC.ProjectInput, 0, len(*req.Projects))
		for _, p := range *req.Projects {
			projects = append(projects, profileUC.ProjectInput{
				Name:        p.Name,
				Description: p.Description,
				ImageURL:    p.ImageURL,
				ProjectURL:  p.ProjectURL,
			})
		}
		input.Projects = projects
	}

	return input
}

// Response DTOs

type ClubDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	City        *string   `json:"city,omitempty"`
	Description *string   `json:"description,omitempty"`
}

type ProjectDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	ProjectURL  *string   `json:"projectUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SocialLinkDTO struct {
	ID       uuid.UUID `json:"id"`
	Platform string    `json:"platform"`
	URL      string    `json:"url"`
}

type ProfileDTO struct {
	ID          uuid.UUID       `json:"id"`
	Slug        *string         `json:"slug"`
	RealName    string          `json:"realName"`
	Nickname    *string         `json:"nickname"`
	PhoneNumber *string         `json:"phoneNumber"`
	Wechat      *string         `json:"wechat"`
	Email       string          `json:"email"`
	SelfIntro   *string         `json:"selfIntro"`
	Occupation  *string         `json:"occupation"`
	Gender      *string         `json:"gender"`
	Field       *string         `json:"field"`
	Status      *string         `json:"status"`
	Resources   *string         `json:"resources"`
	HelpNeeded  *string         `json:"helpNeeded"`
	Level       int             `json:"level"`
	Club        *ClubDTO        `json:"club"`
	Projects    []ProjectDTO    `json:"projects"`
	SocialLinks []SocialLinkDTO `json:"socialLinks"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func ToClubDTO(c *club.Club) *ClubDTO {
	if c == nil {
		return nil
	}
	return &ClubDTO{
		ID:          c.ID,
		Name:        c.Name,
		City:        c.City,
		Description: c.Description,
	}
}

func ToProfileDTO(p *profile.UserProfile) ProfileDTO {
	dto := ProfileDTO{
		ID:          p.ID,
		Slug:        p.Slug,
		RealName:    p.RealName,
		Nickname:    p.Nickname,
		PhoneNumber: p.PhoneNumber,
		Wechat:      p.Wechat,
		Email:       p.Email,
		SelfIntro:   p.SelfIntro,
		Occupation:  p.Occupation,
		Resources:   p.Resources,
		HelpNeeded:  p.HelpNeeded,
		Level:       p.Level,
		Club:        ToClubDTO(p.Club),
		UpdatedAt:   p.UpdatedAt,
	}

	if p.Gender != nil {
		g := string(*p.Gender)
		dto.Gender = &g
	}
	if p.Field != nil {
		f := string(*p.Field)
		dto.Field = &f
	}
	if p.Status != nil {
		s := string(*p.Status)
		dto.Status = &s
	}

	dto.Projects = make([]ProjectDTO, len(p.Projects))
	for i, pr := range p.Projects {
		dto.Projects[i] = ProjectDTO{
			ID:          pr.ID,
			Name:        pr.Name,
			Description: pr.Description,
			ImageURL:    pr.ImageURL,
			ProjectURL:  pr.ProjectURL,
			CreatedAt:   pr.CreatedAt,
		}
	}
	dto.SocialLinks = make([]SocialLinkDTO, len(p.SocialLinks))
	for i, l := range p.SocialLinks {
		dto.SocialLinks[i] = SocialLinkDTO{
			ID:       l.ID,
			Platform: string(l.Platform),
			URL:      l.URL,
		}
	}
	return dto
}
