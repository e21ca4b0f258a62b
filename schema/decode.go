//
// Tencent is pleased to support the open source community by making trpc-rootsignals-mcp available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-rootsignals-mcp is licensed under the Apache License Version 2.0.
//
//

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Validator is implemented by request records that check their own fields.
type Validator interface {
	Validate() error
}

// DecodeArguments decodes a tool-call argument map into a request record.
// Unknown keys are rejected, and records implementing Validator are
// validated. Both failures happen before any network call is made.
func DecodeArguments(args map[string]any, out any) error {
	if args == nil {
		args = map[string]any{}
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("marshal arguments: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	if v, ok := out.(Validator); ok {
		return v.Validate()
	}
	return nil
}
