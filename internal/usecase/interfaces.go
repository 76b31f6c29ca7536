package usecase

import (
	"context"

	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

// ConfirmationSenderInterface is the confirmation-send function seen from the
// submission flow: fire the email for a captured lead, or fail.
type ConfirmationSenderInterface interface {
	SendConfirmation(ctx context.Context, name, email, industry string) error
}

type QueueProducerInterface interface {
	PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error
}
