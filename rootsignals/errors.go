//
// Tencent is pleased to support the open source community by making trpc-rootsignals-mcp available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-rootsignals-mcp is licensed under the Apache License Version 2.0.
//
//

package rootsignals

import "fmt"

// APIError reports an upstream HTTP or network failure.
// StatusCode is 0 for connection-level failures, in which case Detail
// already carries the "Connection error:" prefix.
type APIError struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Detail
	}
	return fmt.Sprintf("Root Signals API error (HTTP %d): %s", e.StatusCode, e.Detail)
}

// ValidationError reports an upstream payload whose shape or field set does
// not match what the client requires. Data carries the offending raw data
// for diagnostics.
type ValidationError struct {
	Message string
	Data    any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "response validation error: " + e.Message
}
