package utils

import (
	"strings"

	"github.com/google/uuid"
)

// LocalIDPrefix marks identifiers synthesized after a failed remote write.
const LocalIDPrefix = "local-"

// NewLocalID returns a random identifier with LocalIDPrefix.
func NewLocalID() string {
	return LocalIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func IsLocalID(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}
