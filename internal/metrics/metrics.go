// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	log "github.com/ChainSafe/log15"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	readHeaderTimeout = time.Second
	shutdownTimeout   = 3 * time.Second
)

var logger = log.New("pkg", "metrics")

// Server is a metrics http server
type Server struct {
	address  string
	gatherer prometheus.Gatherer
	server   *http.Server
	done     chan error
}

// NewServer is a constructor for metrics server serving the metrics
// of the default prometheus registry at /metrics.
func NewServer(address string) (s *Server) {
	return &Server{
		address:  address,
		gatherer: prometheus.DefaultGatherer,
	}
}

// Start starts listening at the server address and serves the
// metrics in the background. It returns the address listened on.
func (s *Server) Start() (address string, err error) {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return "", fmt.Errorf("listening on %s: %w", s.address, err)
	}
	address = listener.Addr().String()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	s.done = make(chan error, 1)

	go func() {
		err := s.server.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
	}()

	logger.Info("metrics server started", "url", "http://"+address+"/metrics")
	return address, nil
}

// Stop gracefully stops the metrics server
func (s *Server) Stop() (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = s.server.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("shutting down metrics server: %w", err)
	}

	err = <-s.done
	if err != nil {
		return fmt.Errorf("metrics server exited: %w", err)
	}
	return nil
}
