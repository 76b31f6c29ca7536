package usecase

// Error codes threaded through the submission flow. Timeout gets its own code
// so callers can tell deadline expiry from a plain remote failure.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeDuplicateLead      = "DUPLICATE_LEAD"
	CodePersistenceError   = "PERSISTENCE_ERROR"
	CodePersistenceTimeout = "PERSISTENCE_TIMEOUT"
)

type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError // set only for CodeValidation
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
