package entity

import (
	"context"
	"errors"
	"time"
)

var ErrDuplicateLead = errors.New("email already captured")

type Lead struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Industry    string    `json:"industry"`
	SubmittedAt time.Time `json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
	EmailSent   *bool     `json:"email_sent,omitempty"` // nil while the confirmation is pending
}

// Industries is the fixed set the form offers. Order matters: it is the order
// the selection control renders.
var Industries = []string{
	"technology",
	"healthcare",
	"finance",
	"education",
	"retail & e-commerce",
	"manufacturing",
	"consulting",
	"other",
}

func IsValidIndustry(industry string) bool {
	for _, v := range Industries {
		if v == industry {
			return true
		}
	}
	return false
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
}
