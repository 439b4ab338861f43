package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// ExternalServiceError covers transport failures and malformed response
// envelopes from the network oracles (completion API, fallback classifier).
type ExternalServiceError struct {
	ErrorMessage
	Service string
	Cause   error
}

func (e *ExternalServiceError) Unwrap() error { return e.Cause }

// DecodeError means the oracle responded but the text was not the single JSON
// object the prompt demands. Kept distinct from ExternalServiceError so the
// two are logged differently: one is network trouble, the other is contract
// drift between the prompt and the model.
type DecodeError struct {
	ErrorMessage
	Raw string
}

type DatabaseError struct {
	ErrorMessage
	Operation string
	Cause     error
}

func (e *DatabaseError) Unwrap() error { return e.Cause }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewExternalServiceError(service, message string, cause error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
		Cause:        cause,
	}
}

func NewDecodeError(raw string) *DecodeError {
	return &DecodeError{
		ErrorMessage: ErrorMessage{Message: "oracle response is not a valid expense object"},
		Raw:          raw,
	}
}

func NewDatabaseError(operation, message string, cause error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Cause:        cause,
	}
}
