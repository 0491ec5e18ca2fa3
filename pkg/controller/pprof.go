package controller

import (
	"net/http/pprof"

	"github.com/go-chi/chi/v5"
)

// profiles are the runtime profiles served next to the index.
var profiles = []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"}

// MountPprof registers the net/http/pprof handlers on r under /debug/pprof.
func MountPprof(r chi.Router) {
	r.Route("/debug/pprof", func(r chi.Router) {
		r.Get("/", pprof.Index)
		r.Get("/cmdline", pprof.Cmdline)
		r.Get("/profile", pprof.Profile)
		r.Get("/symbol", pprof.Symbol)
		r.Post("/symbol", pprof.Symbol)
		r.Get("/trace", pprof.Trace)
		for _, name := range profiles {
			r.Handle("/"+name, pprof.Handler(name))
		}
	})
}
