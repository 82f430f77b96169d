package utils

import (
	"fmt"
	"math/rand"
)

// GenerateOTP returns a 6-digit numeric one-time passcode, zero-padded.
func GenerateOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
