package browser

import (
	"net"
	"net/http"

	"github.com/pkg/errors"
)

// ClientKey identifies the client of a request for throttling purposes.
// Known browsers are keyed by their id. Requests without a valid browser
// cookie get a new id each time, so they are keyed by remote address.
func ClientKey(r *http.Request) (string, error) {
	ctx := r.Context()

	id, err := ContextID(ctx)
	if err != nil {
		return "", errors.WithStack(err)
	}

	if !ContextIssued(ctx) {
		return "browser:" + id, nil
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	return "addr:" + host, nil
}
