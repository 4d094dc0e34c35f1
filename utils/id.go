package utils

import "github.com/google/uuid"

// GenerateID generates a random unique ID
func GenerateID() string {
	return uuid.NewString()
}
