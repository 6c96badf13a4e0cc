package log

import (
	"log/slog"
	"net/url"
)

const redacted = "xxx"

// ScrubbedURL logs rawURL with its password and sensitive query values
// replaced.
func ScrubbedURL(name string, rawURL string) slog.Attr {
	u, err := url.Parse(rawURL)
	if err != nil {
		return slog.String(name, rawURL)
	}

	scrubbed := *u

	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			scrubbed.User = url.UserPassword(u.User.Username(), redacted)
		}
	}

	query := u.Query()
	for _, key := range []string{"token", "password", "secret"} {
		if query.Has(key) {
			query.Set(key, redacted)
		}
	}

	scrubbed.RawQuery = query.Encode()

	return slog.String(name, scrubbed.String())
}
