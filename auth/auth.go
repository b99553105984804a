// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidSessionKey = errors.New("invalid session key")
	ErrInvalidSessionID  = errors.New("invalid session id format")
)

// GenerateSessionID creates a random identifier for a caller session
func GenerateSessionID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ValidateSessionID checks the session id is a well-formed UUID
func ValidateSessionID(sessionID string) error {
	if _, err := uuid.Parse(sessionID); err != nil {
		return ErrInvalidSessionID
	}
	return nil
}

// GenerateSessionKey creates an HMAC-based key for a session
// This is deterministic and verifiable, so it is never stored
func GenerateSessionKey(sessionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(sessionID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateSessionKey checks if the provided key was issued for the session
func ValidateSessionKey(sessionID, sessionKey, salt string) error {
	expected := GenerateSessionKey(sessionID, salt)
	if !hmac.Equal([]byte(sessionKey), []byte(expected)) {
		return ErrInvalidSessionKey
	}
	return nil
}
