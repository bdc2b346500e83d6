package model

// User is a registered username. The ID is assigned by the store.
type User struct {
	ID       string
	Username string
}
