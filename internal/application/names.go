package application

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/usleep/usleep-cli/internal/domain"
)

const sessionNameBytes = 6

// NewSessionName returns a random 12 character hex name, unique enough that
// concurrent runs on one account do not collide.
func NewSessionName() (domain.SessionName, error) {
	buf := make([]byte, sessionNameBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session name: %w", err)
	}
	return domain.SessionName(hex.EncodeToString(buf)), nil
}
