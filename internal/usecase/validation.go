package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Permissive on purpose: the confirmation function applies the same shape
// check, so anything we accept here it accepts too.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateSubmitLeadInput checks the three form fields and returns one error
// per offending field, always in name, email, industry order.
func ValidateSubmitLeadInput(input SubmitLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if !emailPattern.MatchString(input.Email) {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Industry) == "" {
		errors = append(errors, ValidationError{"industry", "is required"})
	} else if !entity.IsValidIndustry(input.Industry) {
		errors = append(errors, ValidationError{"industry", "must be one of the listed industries"})
	}

	return errors
}
