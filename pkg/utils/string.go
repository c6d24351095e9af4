package utils

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/microcosm-cc/bluemonday"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomString returns a random alphanumeric string. Used for the
// passwords mailed to admin-created accounts.
func GenerateRandomString(length int) string {
	return gonanoid.MustGenerate(charset, length)
}

// GenerateOTP returns a 4-digit numeric code in [1000, 9999].
func GenerateOTP() (string, error) {
	lead, err := gonanoid.Generate("123456789", 1)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	rest, err := gonanoid.Generate("0123456789", 3)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return lead + rest, nil
}

var ugc = bluemonday.UGCPolicy()

// SanitizeHTML strips scripts and unsafe attributes from rich-text input.
func SanitizeHTML(s string) string {
	return ugc.Sanitize(s)
}
