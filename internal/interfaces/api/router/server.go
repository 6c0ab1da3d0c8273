package router

import (
	"context"
	"net"
	"net/http"
	"time"
)

// NewServer wraps handler in an http.Server. Request contexts derive from a
// base context that is cancelled when Shutdown starts, so open event streams end.
func NewServer(addr string, handler http.Handler) *http.Server {
	baseCtx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:        addr,
		Handler:     handler,
		IdleTimeout: time.Minute,
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: /alarms/events is a long-lived stream.
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancel)
	return srv
}
