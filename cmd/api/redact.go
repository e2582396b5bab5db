package main

import (
	"net/url"
	"regexp"
	"strings"
)

var passwordPattern = regexp.MustCompile(`(?i)(password|pass|api_key)=[^\s&]+`)

// redactURL drops the password from a connection URL, keeping the user name.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			username = "redacted"
		}
		parsed.User = url.User(username)
	}

	return parsed.String()
}

// redactSecret masks a connection URL's password, or a bare secret entirely.
func redactSecret(secret string) string {
	if strings.Contains(secret, "://") {
		if r := redactURL(secret); r != "" && r != secret {
			return r
		}
	}
	return "[redacted]"
}

// sanitizeError removes known secrets and key=value credentials from err.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		msg = strings.ReplaceAll(msg, secret, redactSecret(secret))
	}

	return passwordPattern.ReplaceAllString(msg, "$1=redacted")
}
