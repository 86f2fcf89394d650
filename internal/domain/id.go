package domain

import "github.com/google/uuid"

// generateID creates a new unique identifier.
func generateID() string {
	return uuid.New().String()
}

// ValidID reports whether s looks like an identifier produced by generateID.
func ValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
