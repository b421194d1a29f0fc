package errs

// codeOrDefault returns *code when given, otherwise the default derived from kind.
func codeOrDefault(code *string, kind Kind) string {
	if code != nil {
		return *code
	}
	return MakeUpperCaseWithUnderscores(string(kind))
}

// NewNotFoundError creates a not-found Error.
//
// Supports optional custom code (if nil, defaults to "NOT_FOUND").
func NewNotFoundError(message string, code *string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    codeOrDefault(code, KindNotFound),
		Message: message,
	}
}

// NewInvalidError creates an invalid-input Error.
//
// This supports extra payload:
//   - code: optional custom code string (if nil, defaults to "INVALID")
//   - errors: optional slice of field errors (validation errors)
//   - cause: optional underlying error (driver or validator error)
func NewInvalidError(message string, code *string, errors []FieldError, cause error) *Error {
	return &Error{
		Kind:    KindInvalid,
		Code:    codeOrDefault(code, KindInvalid),
		Message: message,
		Errors:  errors,
		Err:     cause,
	}
}

// NewConflictError creates a conflict Error (duplicate key, already persisted).
func NewConflictError(message string, code *string, cause error) *Error {
	return &Error{
		Kind:    KindConflict,
		Code:    codeOrDefault(code, KindConflict),
		Message: message,
		Err:     cause,
	}
}

// NewInternalError wraps an unexpected error.
//
// Message is a generic text, the real error stays reachable through Unwrap.
func NewInternalError(cause error) *Error {
	return &Error{
		Kind:    KindInternal,
		Code:    MakeUpperCaseWithUnderscores(string(KindInternal)),
		Message: "internal error",
		Err:     cause,
	}
}

// NewUnavailableError reports that a dependency (the database) could not be reached.
func NewUnavailableError(message string, code *string, cause error) *Error {
	return &Error{
		Kind:    KindUnavailable,
		Code:    codeOrDefault(code, KindUnavailable),
		Message: message,
		Err:     cause,
	}
}
