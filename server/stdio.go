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
	mcp "trpc.group/trpc-go/trpc-mcp-go"

	"trpc.group/trpc-go/trpc-rootsignals-mcp/internal/version"
	"trpc.group/trpc-go/trpc-rootsignals-mcp/log"
)

// RunStdio serves the tool catalog over stdin/stdout and blocks until the
// client closes the stream. All logging goes to stderr so the protocol
// stream stays clean.
func (s *Server) RunStdio() error {
	srv := mcp.NewStdioServer(serverName, version.Version,
		mcp.WithStdioServerLogger(mcp.GetDefaultLogger()),
	)
	for _, spec := range s.tools() {
		srv.RegisterTool(spec.tool, spec.handler)
	}
	log.Infof("starting %s v%s on stdio", serverName, version.Version)
	return srv.Start()
}
