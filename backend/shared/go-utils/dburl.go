package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// IsolatedRoleName is the per-run database role used by isolated test
// schemas.
func IsolatedRoleName(runnerID, runNumber string) string {
	return strings.ToLower(runnerID + "-" + runNumber)
}

// WithIsolatedRole swaps the user of baseURL for the isolated role, keeps the
// password and tags the connection with application_name.
func WithIsolatedRole(baseURL, runnerID, runNumber string) (string, error) {
	if runnerID == "" || runNumber == "" {
		return "", fmt.Errorf("runnerID and runNumber must be non-empty")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid DB URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("invalid DB URL scheme %q", u.Scheme)
	}

	role := IsolatedRoleName(runnerID, runNumber)
	password, _ := u.User.Password()
	u.User = url.UserPassword(role, password)

	q := u.Query()
	q.Set("application_name", role)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
