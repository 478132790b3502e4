package postgres

import (
	"fmt"
	"net/url"
	"strings"

	pq "github.com/lib/pq"

	"github.com/julianstephens/niyyah/internal/constants"
	"github.com/julianstephens/niyyah/internal/logger"
)

// IsConnString reports whether s looks like a PostgreSQL URL rather than a file path.
func IsConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// dsnKeys returns the lowercased parameter names of a key=value DSN.
func dsnKeys(connStr string) map[string]bool {
	keys := make(map[string]bool)
	for _, field := range strings.Fields(connStr) {
		if k, _, ok := strings.Cut(field, "="); ok {
			keys[strings.ToLower(strings.TrimSpace(k))] = true
		}
	}
	return keys
}

// paramKeys handles both URL query parameters and DSN fields.
func paramKeys(connStr string) map[string]bool {
	if !IsConnString(connStr) {
		return dsnKeys(connStr)
	}
	keys := make(map[string]bool)
	if u, err := url.Parse(connStr); err == nil {
		for k := range u.Query() {
			keys[strings.ToLower(k)] = true
		}
	}
	return keys
}

func hasSearchPathParam(connStr string) bool { return dsnKeys(connStr)["search_path"] }

func hasSSLMode(connStr string) bool { return paramKeys(connStr)["sslmode"] }

// withSearchPath pins unqualified table names to the app schema unless the
// caller already chose one.
func withSearchPath(connStr string) string {
	if !IsConnString(connStr) {
		if hasSearchPathParam(connStr) {
			return connStr
		}
		return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
	}

	u, err := url.Parse(connStr)
	if err != nil {
		logger.Warn("unparsable postgres URL, leaving search_path unset", "error", err)
		return connStr
	}
	q := u.Query()
	if q.Get("search_path") != "" {
		return connStr
	}
	q.Set("search_path", constants.AppName)
	u.RawQuery = q.Encode()
	return u.String()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConnectionString, fmt.Sprintf(format, args...))
}

// ValidateConnString checks that connStr parses and carries no password.
// Passwords belong in PGPASSWORD or ~/.pgpass.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, invalid("connection string cannot be empty")
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return false, invalid("%v", err)
	}

	if !IsConnString(connStr) {
		if dsnKeys(connStr)["password"] {
			return false, ErrEmbeddedCredentials
		}
		return true, nil
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return false, invalid("%v", err)
	}
	if _, set := u.User.Password(); set {
		return false, ErrEmbeddedCredentials
	}
	if u.Host == "" && u.User == nil && strings.Trim(u.Path, "/") == "" {
		return false, invalid("connection URL names no host, user or database")
	}
	return true, nil
}
