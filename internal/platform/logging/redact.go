package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// jwtPattern matches the three dot-separated base64 segments of a JWT,
// which is the shape of the external sign-in credential.
var jwtPattern = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)

// DefaultRedactOptions returns the masq options for secret redaction.
// Sign-in passwords and provider credentials must never reach a log line.
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("password"),
		masq.WithFieldName("Password"),
		masq.WithFieldName("credential"),
		masq.WithFieldName("Credential"),
		masq.WithFieldName("PasswordHash"),
		masq.WithFieldName("password_hash"),
		masq.WithFieldName("token"),
		masq.WithFieldName("secret"),

		masq.WithFieldPrefix("secret"),

		masq.WithRegex(jwtPattern),
	}
}

// NewReplaceAttr creates a ReplaceAttr function for slog.HandlerOptions
// that redacts sensitive data.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	allOpts := append(DefaultRedactOptions(), opts...)
	return masq.New(allOpts...)
}
