//
// Tencent is pleased to support the open source community by making trpc-rootsignals-mcp available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-rootsignals-mcp is licensed under the Apache License Version 2.0.
//
//

// Package settings loads server configuration from the environment.
//
// Configuration is an explicit struct constructed once at process start and
// passed into the repository and service constructors; there is no ambient
// global state.
package settings

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Transport values accepted by TRANSPORT.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Defaults for the Root Signals API connection.
const (
	DefaultAPIURL        = "https://api.app.rootsignals.ai"
	DefaultAPITimeout    = 30 * time.Second
	DefaultMaxEvaluators = 40
	DefaultMaxJudges     = 30
)

// Settings holds all configuration for the server.
type Settings struct {
	// APIKey authenticates against the Root Signals API. Required.
	APIKey string
	// APIURL is the base URL of the Root Signals API.
	APIURL string
	// APITimeout bounds each upstream HTTP request.
	APITimeout time.Duration
	// MaxEvaluators caps how many evaluators a listing fetches.
	MaxEvaluators int
	// MaxJudges caps how many judges a listing fetches.
	MaxJudges int

	// CodingPolicyEvaluatorID identifies the evaluator backing the
	// run_coding_policy_adherence tool.
	CodingPolicyEvaluatorID string
	// CodingPolicyEvaluatorRequest is the canned query sent with coding
	// policy evaluations.
	CodingPolicyEvaluatorRequest string

	// Host and Port configure the HTTP transport.
	Host string
	Port int
	// Transport selects the MCP transport: "stdio" or "http".
	Transport string
	// LogLevel configures the default logger.
	LogLevel string
	// Env is an environment identifier (development, staging, production).
	Env string
	// Debug enables verbose request/response logging.
	Debug bool
}

// Load reads settings from the environment, honoring a .env file when one
// exists. It fails if the API key is missing or a value cannot be parsed.
func Load() (*Settings, error) {
	// Load .env file if it exists; real environment variables win.
	_ = godotenv.Load()

	s := &Settings{
		APIKey:                  os.Getenv("ROOT_SIGNALS_API_KEY"),
		APIURL:                  getEnv("ROOT_SIGNALS_API_URL", DefaultAPIURL),
		APITimeout:              getEnvAsDuration("ROOT_SIGNALS_API_TIMEOUT", DefaultAPITimeout),
		MaxEvaluators:           getEnvAsInt("MAX_EVALUATORS", DefaultMaxEvaluators),
		MaxJudges:               getEnvAsInt("MAX_JUDGES", DefaultMaxJudges),
		CodingPolicyEvaluatorID: getEnv("CODING_POLICY_EVALUATOR_ID", "4613f248-b60e-403a-bcdc-157d1c44194a"),
		CodingPolicyEvaluatorRequest: getEnv("CODING_POLICY_EVALUATOR_REQUEST",
			"Is the response written according to the coding policy?"),
		Host:      getEnv("HOST", "0.0.0.0"),
		Port:      getEnvAsInt("PORT", 9090),
		Transport: getEnv("TRANSPORT", TransportStdio),
		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Env:       getEnv("ENV", "development"),
		Debug:     getEnvAsBool("DEBUG", false),
	}

	if s.APIKey == "" {
		return nil, fmt.Errorf("ROOT_SIGNALS_API_KEY is not set")
	}
	s.APIURL = strings.TrimSuffix(s.APIURL, "/")

	switch s.Transport {
	case TransportStdio, TransportHTTP:
	case "sse":
		// Accepted as a legacy alias for the network transport.
		s.Transport = TransportHTTP
	default:
		return nil, fmt.Errorf("unsupported TRANSPORT %q (expected stdio or http)", s.Transport)
	}

	return s, nil
}

// Addr returns the host:port the HTTP transport binds to.
func (s *Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvAsBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// getEnvAsDuration parses either a Go duration string ("30s") or a bare
// number of seconds ("30"), matching how the upstream service documents its
// timeout variable.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return fallback
}
