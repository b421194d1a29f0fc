// Package errs define custom error types and utilities.
//
// Its purpose is to give callers one error shape for everything that can go
// wrong between the service layer and the database: a Kind to branch on,
// a stable machine Code, a human Message, optional field errors, and the
// wrapped cause.
//
// - Branch with errors.Is(err, errs.ErrNotFound) and friends (matches by Kind).
// - Inspect with errors.As(err, &e) to read Code / Errors.
// - Unwrap reaches the original driver error for logging.
package errs
