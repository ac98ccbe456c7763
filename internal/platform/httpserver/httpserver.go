package httpserver

import (
	"net/http"
	"time"
)

// New builds the HTTP server for the tracking API. Coordinate
// submissions are small JSON bodies and report pages render from
// memory, so timeouts are kept tight.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
