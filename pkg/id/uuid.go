package id

import (
	"strings"

	"github.com/google/uuid"
)

/**
 * @author: h.morrow.dev@gmail.com
 * @time: 2025/3/3 00:12
 * @file: uuid.go
 * @description: id util
 */

// GetUUID generates a new UUID
func GetUUID() string {
	return uuid.NewString()
}

// GetUUIDWithoutDashes generates a new UUID not horizontal line
func GetUUIDWithoutDashes() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
