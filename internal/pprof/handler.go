// Package pprof exposes the runtime profiles and the process variables under
// a debug prefix.
package pprof

import (
	"expvar"
	"net/http"
	"net/http/pprof"
)

type Handler struct {
	mux *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type OptionFunc func(vars *expvar.Map)

// WithVar adds a variable to the ones served by {prefix}/state. It is not
// published globally so that several handlers can coexist.
func WithVar(name string, v expvar.Var) OptionFunc {
	return func(vars *expvar.Map) {
		vars.Set(name, v)
	}
}

// NewHandler serves the profiles under prefix, which must be "/debug/pprof"
// for the index links to resolve.
func NewHandler(prefix string, funcs ...OptionFunc) *Handler {
	vars := new(expvar.Map).Init()
	for _, fn := range funcs {
		fn(vars)
	}

	mux := &http.ServeMux{}

	mux.HandleFunc(prefix+"/", pprof.Index)
	mux.HandleFunc(prefix+"/cmdline", pprof.Cmdline)
	mux.HandleFunc(prefix+"/profile", pprof.Profile)
	mux.HandleFunc(prefix+"/symbol", pprof.Symbol)
	mux.HandleFunc(prefix+"/trace", pprof.Trace)
	mux.Handle(prefix+"/vars", expvar.Handler())

	mux.HandleFunc(prefix+"/state", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(vars.String()))
	})

	mux.HandleFunc(prefix+"/{name}", func(w http.ResponseWriter, r *http.Request) {
		pprof.Handler(r.PathValue("name")).ServeHTTP(w, r)
	})

	return &Handler{mux}
}

var _ http.Handler = &Handler{}
