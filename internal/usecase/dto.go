package usecase

import "github.com/xavierca1/ligue-leads/internal/entity"

type SubmitLeadInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Industry string `json:"industry"`
}

type SubmitLeadOutput struct {
	Lead         entity.Lead `json:"lead"`
	EmailSent    bool        `json:"email_sent"`
	SessionCount int         `json:"session_count"`
}
