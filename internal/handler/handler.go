// Package handler is the HTTP layer that sits right after the router.
//
// Handlers bind and validate request input through the validation
// package, call the service layer and shape its results into the JSON the
// clients expect. Failures are returned untouched; the global error handler
// renders them.
package handler
