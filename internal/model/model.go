// Package model defines the domain types shared by the store, repository
// and service layers.
package model

import "errors"

// ErrInvalidID is returned when an identifier does not match the store's
// identifier format (ObjectID hex for mongo, UUID for postgres).
var ErrInvalidID = errors.New("invalid identifier")
