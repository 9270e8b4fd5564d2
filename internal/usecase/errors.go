package usecase

// Error codes returned by the core operations. Handlers map them to HTTP
// statuses; nothing here ever panics through to the caller.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeNotFound         = "NOT_FOUND"
	CodeStageConflict    = "STAGE_CONFLICT"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError marks infrastructure failures (store, queue) that the
// domain cannot act on.
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

func NewValidationError(msg string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: msg}
}

// NewNotFoundError is also returned when the caller may not see the card:
// user-facing messaging never distinguishes "does not exist" from "you
// cannot see it", so unauthorized record ids are not probeable.
func NewNotFoundError(msg string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: msg}
}

func NewPermissionDeniedError(msg string) *DomainError {
	return &DomainError{Code: CodePermissionDenied, Message: msg}
}

func NewStageConflictError(msg string) *DomainError {
	return &DomainError{Code: CodeStageConflict, Message: msg}
}

func hasCode(err error, code string) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}

func IsNotFound(err error) bool         { return hasCode(err, CodeNotFound) }
func IsPermissionDenied(err error) bool { return hasCode(err, CodePermissionDenied) }
func IsValidation(err error) bool       { return hasCode(err, CodeValidation) }
func IsStageConflict(err error) bool    { return hasCode(err, CodeStageConflict) }
