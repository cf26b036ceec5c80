package domain

import (
	"fmt"
	"strings"
)

// APITokenSecretKey is the secret store key the API token is saved under.
const APITokenSecretKey = "usleep/api_token"

// NormalizeToken trims a pasted token and strips a leading "Bearer " scheme.
func NormalizeToken(raw string) (string, error) {
	token := strings.TrimSpace(raw)
	if scheme, rest, ok := strings.Cut(token, " "); ok && strings.EqualFold(scheme, "bearer") {
		token = strings.TrimSpace(rest)
	}

	if token == "" || strings.EqualFold(token, "bearer") {
		return "", fmt.Errorf("%w: token is empty", ErrInvalidToken)
	}
	if strings.ContainsAny(token, " \t\r\n") {
		return "", fmt.Errorf("%w: token contains whitespace", ErrInvalidToken)
	}

	return token, nil
}
