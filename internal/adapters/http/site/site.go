// Package site serves the embedded bench page: a thin view that polls the
// game API and turns clicks into commands.
package site

import (
	"context"
	"net/http"
)

// Register serves the embedded page at /. Paths that are not files return
// 404.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	files := http.FileServer(FS())
	mux.Handle("GET /", noCache(files))
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}
