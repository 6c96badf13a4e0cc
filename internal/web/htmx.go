package web

import (
	"net/http"
	"strings"
)

const (
	headerHXRequest  = "HX-Request"
	headerHXLocation = "HX-Location"
)

func isHTMXRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(headerHXRequest), "true")
}
