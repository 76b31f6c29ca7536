package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"github.com/xavierca1/ligue-leads/internal/session"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

// MockConfirmationSender
type MockConfirmationSender struct {
	mock.Mock
}

func (m *MockConfirmationSender) SendConfirmation(ctx context.Context, name, email, industry string) error {
	args := m.Called(ctx, name, email, industry)
	return args.Error(0)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func validInput() SubmitLeadInput {
	return SubmitLeadInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Industry: "technology",
	}
}

func TestSubmitLeadSuccess(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockNotifier := new(MockConfirmationSender)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockNotifier.On("SendConfirmation", mock.Anything, "Ada", "ada@example.com", "technology").Return(nil)

	store := session.NewStore()
	uc := NewSubmitLeadUseCase(mockRepo, mockNotifier, nil)

	output, err := uc.Execute(context.Background(), store, validInput())

	assert.NoError(t, err)
	assert.Equal(t, "Ada", output.Lead.Name)
	assert.Equal(t, "ada@example.com", output.Lead.Email)
	assert.Equal(t, "technology", output.Lead.Industry)
	assert.False(t, output.Lead.SubmittedAt.IsZero())
	assert.True(t, output.EmailSent)
	assert.Equal(t, 1, output.SessionCount)

	state := store.Snapshot()
	assert.True(t, state.Submitted)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)
	assert.Len(t, state.Leads, 1)
	if assert.NotNil(t, state.Leads[0].EmailSent) {
		assert.True(t, *state.Leads[0].EmailSent)
	}

	mockRepo.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestSubmitLeadValidationFailureMakesNoRemoteCalls(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockNotifier := new(MockConfirmationSender)

	store := session.NewStore()
	uc := NewSubmitLeadUseCase(mockRepo, mockNotifier, nil)

	output, err := uc.Execute(context.Background(), store, SubmitLeadInput{
		Name:     "",
		Email:    "not-an-email",
		Industry: "technology",
	})

	assert.Nil(t, output)

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeValidation, domainErr.Code)
	assert.Len(t, domainErr.Fields, 2)
	assert.Equal(t, "name", domainErr.Fields[0].Field)
	assert.Equal(t, "email", domainErr.Fields[1].Field)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockNotifier.AssertNotCalled(t, "SendConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	assert.False(t, store.Snapshot().Submitted)
	assert.Equal(t, 0, store.LeadCount())
}

func TestSubmitLeadInsertFailure(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockNotifier := new(MockConfirmationSender)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	store := session.NewStore()
	uc := NewSubmitLeadUseCase(mockRepo, mockNotifier, nil)

	output, err := uc.Execute(context.Background(), store, validInput())

	assert.Nil(t, output)

	var techErr *TechnicalError
	assert.ErrorAs(t, err, &techErr)
	assert.Equal(t, CodePersistenceError, techErr.Code)

	// No lead recorded, no confirmation attempted, submitted stays false.
	mockNotifier.AssertNotCalled(t, "SendConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	state := store.Snapshot()
	assert.False(t, state.Submitted)
	assert.Empty(t, state.Leads)
	assert.NotEmpty(t, state.Error)
}

func TestSubmitLeadInsertTimeout(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockNotifier := new(MockConfirmationSender)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(context.DeadlineExceeded)

	store := session.NewStore()
	uc := NewSubmitLeadUseCase(mockRepo, mockNotifier, nil)

	_, err := uc.Execute(context.Background(), store, validInput())

	// Deadline expiry surfaces as its own code, not a generic failure.
	var techErr *TechnicalError
	assert.ErrorAs(t, err, &techErr)
	assert.Equal(t, CodePersistenceTimeout, techErr.Code)

	mockNotifier.AssertNotCalled(t, "SendConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 0, store.LeadCount())
	assert.False(t, store.Snapshot().Submitted)
}

func TestSubmitLeadDuplicateFromDatabase(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockNotifier := new(MockConfirmationSender)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(entity.ErrDuplicateLead)

	store := session.NewStore()
	uc := NewSubmitLeadUseCase(mockRepo, mockNotifier, nil)

	_, err := uc.Execute(context.Background(), store, validInput())

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeDuplicateLead, domainErr.Code)

	mockNotifier.AssertNotCalled(t, "SendConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 0, store.LeadCount())
}

func TestSubmitLeadNotifyFailureStillSucceeds(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockNotifier := new(MockConfirmationSender)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockNotifier.On("SendConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("function timed out"))

	store := session.NewStore()
	uc := NewSubmitLeadUseCase(mockRepo, mockNotifier, nil)

	output, err := uc.Execute(context.Background(), store, validInput())

	// The failed confirmation never blocks the success view.
	assert.NoError(t, err)
	assert.False(t, output.EmailSent)
	assert.Equal(t, 1, output.SessionCount)

	state := store.Snapshot()
	assert.True(t, state.Submitted)
	if assert.NotNil(t, state.Leads[0].EmailSent) {
		assert.False(t, *state.Leads[0].EmailSent)
	}
}

func TestSubmitLeadNotifyTimeoutStillSucceeds(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockNotifier := new(MockConfirmationSender)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockNotifier.On("SendConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(context.DeadlineExceeded)

	store := session.NewStore()
	uc := NewSubmitLeadUseCase(mockRepo, mockNotifier, nil)

	output, err := uc.Execute(context.Background(), store, validInput())

	// A confirmation call that outlives its bounded wait is treated exactly
	// like an explicit confirmation error.
	assert.NoError(t, err)
	assert.False(t, output.EmailSent)
	assert.Equal(t, 1, output.SessionCount)

	state := store.Snapshot()
	assert.True(t, state.Submitted)
	if assert.NotNil(t, state.Leads[0].EmailSent) {
		assert.False(t, *state.Leads[0].EmailSent)
	}
}

func TestSubmitLeadCarriesRepositoryAssignedID(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockNotifier := new(MockConfirmationSender)

	// The repository fills ID and CreatedAt from the insert's RETURNING
	// clause; the stored lead must carry them.
	assignedAt := time.Now().UTC()
	mockRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			lead := args.Get(1).(*entity.Lead)
			lead.ID = "lead-123"
			lead.CreatedAt = assignedAt
		}).
		Return(nil)
	mockNotifier.On("SendConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	store := session.NewStore()
	uc := NewSubmitLeadUseCase(mockRepo, mockNotifier, nil)

	output, err := uc.Execute(context.Background(), store, validInput())

	assert.NoError(t, err)
	assert.Equal(t, "lead-123", output.Lead.ID)
	assert.Equal(t, assignedAt, output.Lead.CreatedAt)
	assert.Equal(t, "lead-123", store.Snapshot().Leads[0].ID)
}

func TestSubmitLeadConfirmationAttemptedOncePerInsert(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockNotifier := new(MockConfirmationSender)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockNotifier.On("SendConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	store := session.NewStore()
	uc := NewSubmitLeadUseCase(mockRepo, mockNotifier, nil)

	_, err := uc.Execute(context.Background(), store, validInput())
	assert.NoError(t, err)

	mockRepo.AssertNumberOfCalls(t, "Create", 1)
	mockNotifier.AssertNumberOfCalls(t, "SendConfirmation", 1)
}

func TestSubmitLeadQueuePublishFailureIsBestEffort(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockNotifier := new(MockConfirmationSender)
	mockQueue := new(MockQueueProducer)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockNotifier.On("SendConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockQueue.On("PublishLeadCaptured", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	store := session.NewStore()
	uc := NewSubmitLeadUseCase(mockRepo, mockNotifier, mockQueue)

	output, err := uc.Execute(context.Background(), store, validInput())

	assert.NoError(t, err)
	assert.True(t, output.EmailSent)
	assert.Equal(t, 1, output.SessionCount)
	mockQueue.AssertExpectations(t)
}

func TestSubmitLeadSessionDuplicateRejected(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockNotifier := new(MockConfirmationSender)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockNotifier.On("SendConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	store := session.NewStore()
	uc := NewSubmitLeadUseCase(mockRepo, mockNotifier, nil)

	_, err := uc.Execute(context.Background(), store, validInput())
	assert.NoError(t, err)

	_, err = uc.Execute(context.Background(), store, validInput())

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeDuplicateLead, domainErr.Code)

	// Exactly one lead stored after the second attempt.
	assert.Equal(t, 1, store.LeadCount())
	assert.NotEmpty(t, store.Snapshot().Error)
}

func TestSubmitAnotherPreservesSessionCount(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockNotifier := new(MockConfirmationSender)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockNotifier.On("SendConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	store := session.NewStore()
	uc := NewSubmitLeadUseCase(mockRepo, mockNotifier, nil)

	first, err := uc.Execute(context.Background(), store, validInput())
	assert.NoError(t, err)
	assert.Equal(t, 1, first.SessionCount)

	// "Submit another" resets the flag but keeps the collected leads.
	store.Reset()
	assert.Equal(t, 1, store.LeadCount())

	second, err := uc.Execute(context.Background(), store, SubmitLeadInput{
		Name:     "Grace",
		Email:    "grace@example.com",
		Industry: "education",
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, second.SessionCount)
	assert.True(t, store.Snapshot().Submitted)
}
