package utils

import (
	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}
