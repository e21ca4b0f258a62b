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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeArguments(t *testing.T) {
	var req EvaluationRequest
	err := DecodeArguments(map[string]any{
		"evaluator_id": "e1",
		"request":      "What is RAG?",
		"response":     "Retrieval augmented generation.",
	}, &req)
	require.NoError(t, err)
	assert.Equal(t, "e1", req.EvaluatorID)
	assert.Equal(t, "What is RAG?", req.Request)
}

func TestDecodeArgumentsRejectsUnknownKeys(t *testing.T) {
	var req EvaluationRequest
	err := DecodeArguments(map[string]any{
		"evaluator_id": "e1",
		"request":      "q",
		"response":     "r",
		"bogus":        true,
	}, &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestDecodeArgumentsValidates(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		out     any
		wantErr string
	}{
		{
			name:    "empty request text",
			args:    map[string]any{"evaluator_id": "e1", "request": "   ", "response": "r"},
			out:     &EvaluationRequest{},
			wantErr: "request cannot be empty",
		},
		{
			name:    "missing response",
			args:    map[string]any{"evaluator_id": "e1", "request": "q"},
			out:     &EvaluationRequest{},
			wantErr: "response cannot be empty",
		},
		{
			name:    "missing evaluator name",
			args:    map[string]any{"request": "q", "response": "r"},
			out:     &EvaluationByNameRequest{},
			wantErr: "evaluator_name cannot be empty",
		},
		{
			name:    "missing judge id",
			args:    map[string]any{"request": "q", "response": "r"},
			out:     &RunJudgeRequest{},
			wantErr: "judge_id cannot be empty",
		},
		{
			name:    "missing policy documents",
			args:    map[string]any{"code": "package main"},
			out:     &CodingPolicyAdherenceRequest{},
			wantErr: "policy_documents cannot be empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DecodeArguments(tt.args, tt.out)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecodeArgumentsEmptyRequests(t *testing.T) {
	var list ListEvaluatorsRequest
	require.NoError(t, DecodeArguments(nil, &list))
	require.NoError(t, DecodeArguments(map[string]any{}, &list))

	err := DecodeArguments(map[string]any{"unexpected": 1}, &list)
	require.Error(t, err)
}

func TestRAGContextsDefaultEmpty(t *testing.T) {
	var req RAGEvaluationRequest
	err := DecodeArguments(map[string]any{
		"evaluator_id": "e1",
		"request":      "q",
		"response":     "r",
	}, &req)
	require.NoError(t, err)
	assert.Empty(t, req.Contexts)

	err = DecodeArguments(map[string]any{
		"evaluator_id": "e1",
		"request":      "q",
		"response":     "r",
		"contexts":     []any{"a", "b"},
	}, &req)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, req.Contexts)
}

func TestRunJudgeRequestJudgeNameOptional(t *testing.T) {
	var req RunJudgeRequest
	err := DecodeArguments(map[string]any{
		"judge_id": "j1",
		"request":  "q",
		"response": "r",
	}, &req)
	require.NoError(t, err)
	assert.Empty(t, req.JudgeName)
}

func TestEvaluationResponseOmitsUnsetOptionals(t *testing.T) {
	data, err := json.Marshal(&EvaluationResponse{
		EvaluatorName: "Clarity",
		Score:         0.85,
	})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.NotContains(t, m, "justification")
	assert.NotContains(t, m, "execution_log_id")
	assert.NotContains(t, m, "cost")

	justification := "ok"
	data, err = json.Marshal(&EvaluationResponse{
		EvaluatorName: "Clarity",
		Score:         0.85,
		Justification: &justification,
	})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "ok", m["justification"])
}

func TestEvaluatorInfoSerializesFlags(t *testing.T) {
	data, err := json.Marshal(&EvaluatorInfo{
		ID:        "e1",
		Name:      "Clarity",
		CreatedAt: "2024-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	// The boolean flags are always present, even when false.
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, false, m["requires_contexts"])
	assert.Equal(t, false, m["requires_expected_output"])
	assert.NotContains(t, m, "intent")
}
