//
// Tencent is pleased to support the open source community by making trpc-rootsignals-mcp available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-rootsignals-mcp is licensed under the Apache License Version 2.0.
//
//

// Package main starts the Root Signals MCP server on the configured
// transport.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"trpc.group/trpc-go/trpc-rootsignals-mcp/internal/version"
	"trpc.group/trpc-go/trpc-rootsignals-mcp/log"
	"trpc.group/trpc-go/trpc-rootsignals-mcp/rootsignals"
	"trpc.group/trpc-go/trpc-rootsignals-mcp/server"
	"trpc.group/trpc-go/trpc-rootsignals-mcp/service"
	"trpc.group/trpc-go/trpc-rootsignals-mcp/settings"
)

func main() {
	cfg, err := settings.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	if cfg.Debug {
		log.SetLevel(log.LevelDebug)
	} else {
		log.SetLevel(cfg.LogLevel)
	}

	client := rootsignals.NewClient(cfg.APIKey, cfg.APIURL,
		rootsignals.WithTimeout(cfg.APITimeout))
	evaluators := service.NewEvaluatorService(
		rootsignals.NewEvaluatorRepository(client, cfg.MaxEvaluators))
	judges := service.NewJudgeService(
		rootsignals.NewJudgeRepository(client, cfg.MaxJudges))
	srv := server.New(cfg, evaluators, judges)

	log.Infof("trpc-rootsignals-mcp v%s (env=%s transport=%s)", version.Version, cfg.Env, cfg.Transport)

	switch cfg.Transport {
	case settings.TransportHTTP:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := server.NewHTTPServer(srv, cfg.Addr()).Run(ctx); err != nil {
			log.Fatalf("server error: %v", err)
		}
	default:
		if err := srv.RunStdio(); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
