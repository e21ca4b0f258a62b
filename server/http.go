//
// Tencent is pleased to support the open source community by making trpc-rootsignals-mcp available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-rootsignals-mcp is licensed under the Apache License Version 2.0.
//
//

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	mcp "trpc.group/trpc-go/trpc-mcp-go"

	"trpc.group/trpc-go/trpc-rootsignals-mcp/internal/version"
	"trpc.group/trpc-go/trpc-rootsignals-mcp/log"
)

const mcpPath = "/mcp"

// HTTPServer serves the tool catalog over streamable HTTP, with a health
// endpoint next to the MCP path.
type HTTPServer struct {
	addr   string
	router *mux.Router
}

// NewHTTPServer mounts the server's tools under /mcp on addr.
func NewHTTPServer(s *Server, addr string) *HTTPServer {
	srv := mcp.NewServer(serverName, version.Version,
		mcp.WithServerAddress(addr),
		mcp.WithServerPath(mcpPath),
	)
	for _, spec := range s.tools() {
		srv.RegisterTool(spec.tool, spec.handler)
	}

	router := mux.NewRouter()
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Content-Length", "Content-Type"},
	})
	router.Use(c.Handler)
	router.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	router.PathPrefix(mcpPath).Handler(srv.HTTPHandler())

	return &HTTPServer{addr: addr, router: router}
}

// Handler returns the HTTP handler serving both the MCP and the health
// endpoints.
func (h *HTTPServer) Handler() http.Handler {
	return h.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (h *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    h.addr,
		Handler: h.router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("starting %s v%s on http://%s%s", serverName, version.Version, h.addr, mcpPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
