// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures
// (FieldErrors for form input, HTTPError for API responses)
// so the client receives a meaningful and consistent
// status and message.
package errs
