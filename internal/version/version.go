//
// Tencent is pleased to support the open source community by making trpc-rootsignals-mcp available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-rootsignals-mcp is licensed under the Apache License Version 2.0.
//
//

// Package version records the module version reported to the upstream API
// and to MCP clients.
package version

// Version is the current release of trpc-rootsignals-mcp.
const Version = "0.3.0"
