package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"github.com/xavierca1/ligue-leads/internal/session"
)

// Bounded waits for the two remote calls. Each call gets its own deadline;
// expiry aborts the call and is reported as a timeout, not a generic failure.
const (
	InsertTimeout = 10 * time.Second
	NotifyTimeout = 10 * time.Second
)

type SubmitLeadUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Notifier ConfirmationSenderInterface
	Queue    QueueProducerInterface
}

func NewSubmitLeadUseCase(
	repo entity.LeadRepositoryInterface,
	notifier ConfirmationSenderInterface,
	producer QueueProducerInterface,
) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		Repo:     repo,
		Notifier: notifier,
		Queue:    producer,
	}
}

// Execute runs one submission attempt against the given session store:
// validate, insert the lead, trigger the confirmation email, record the lead.
// The insert always happens before the confirmation call, and the confirmation
// is attempted at most once per successful insert. A confirmation failure is
// never fatal: it only lands as EmailSent=false on the stored lead.
func (uc *SubmitLeadUseCase) Execute(ctx context.Context, store *session.Store, input SubmitLeadInput) (*SubmitLeadOutput, error) {
	store.ClearError()
	store.SetLoading(true)
	defer store.SetLoading(false)

	if validationErrors := ValidateSubmitLeadInput(input); len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: "validation failed",
			Fields:  validationErrors,
		}
	}

	// ID and CreatedAt come back from the insert's RETURNING clause.
	lead := &entity.Lead{
		Name:        input.Name,
		Email:       input.Email,
		Industry:    input.Industry,
		SubmittedAt: time.Now().UTC(),
	}

	insertCtx, cancel := context.WithTimeout(ctx, InsertTimeout)
	defer cancel()

	if err := uc.Repo.Create(insertCtx, lead); err != nil {
		switch {
		case errors.Is(err, entity.ErrDuplicateLead):
			store.SetError("this email was already captured")
			return nil, &DomainError{
				Code:    CodeDuplicateLead,
				Message: "this email was already captured",
			}
		case errors.Is(err, context.DeadlineExceeded):
			store.SetError("the database did not respond in time")
			return nil, &TechnicalError{
				Code:    CodePersistenceTimeout,
				Message: "lead insert timed out: " + err.Error(),
			}
		default:
			store.SetError("failed to save your information")
			return nil, &TechnicalError{
				Code:    CodePersistenceError,
				Message: "lead insert failed: " + err.Error(),
			}
		}
	}

	// Best effort: a queue outage must not affect the submission outcome.
	if uc.Queue != nil {
		payload := queue.LeadCapturedPayload{
			LeadID:      lead.ID,
			Name:        lead.Name,
			Email:       lead.Email,
			Industry:    lead.Industry,
			SubmittedAt: lead.SubmittedAt.Format(time.RFC3339),
		}
		if err := uc.Queue.PublishLeadCaptured(ctx, payload); err != nil {
			log.Printf("[SUBMIT] queue publish failed for %s: %v", lead.Email, err)
		}
	}

	sent := uc.sendConfirmation(ctx, lead)
	lead.EmailSent = &sent

	if err := store.AddLead(*lead); err != nil {
		// The row is in the database; only the session rejected it.
		return nil, &DomainError{
			Code:    CodeDuplicateLead,
			Message: err.Error(),
		}
	}

	store.SetSubmitted(true)

	return &SubmitLeadOutput{
		Lead:         *lead,
		EmailSent:    sent,
		SessionCount: store.LeadCount(),
	}, nil
}

func (uc *SubmitLeadUseCase) sendConfirmation(ctx context.Context, lead *entity.Lead) bool {
	if uc.Notifier == nil {
		return false
	}

	notifyCtx, cancel := context.WithTimeout(ctx, NotifyTimeout)
	defer cancel()

	if err := uc.Notifier.SendConfirmation(notifyCtx, lead.Name, lead.Email, lead.Industry); err != nil {
		log.Printf("[SUBMIT] confirmation send failed for %s: %v", lead.Email, err)
		return false
	}
	return true
}
