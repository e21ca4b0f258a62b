//
// Tencent is pleased to support the open source community by making trpc-rootsignals-mcp available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-rootsignals-mcp is licensed under the Apache License Version 2.0.
//
//

package schema

// The response records are trimmed-down views of the Root Signals platform
// models. They are transient per-request DTOs: produced only by the
// repository's record mappers, never mutated afterwards. Optional fields are
// pointers so that unset values are omitted from the serialized tool result.

// EvaluatorInfo describes one upstream evaluator.
type EvaluatorInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	// Intent is hoisted from the upstream record's objective.intent field.
	Intent                 *string `json:"intent,omitempty"`
	RequiresContexts       bool    `json:"requires_contexts"`
	RequiresExpectedOutput bool    `json:"requires_expected_output"`
}

// EvaluatorsListResponse is the output of the list_evaluators tool.
type EvaluatorsListResponse struct {
	Evaluators []EvaluatorInfo `json:"evaluators"`
}

// JudgeInfo describes one upstream judge.
type JudgeInfo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CreatedAt   string  `json:"created_at"`
	Description *string `json:"description,omitempty"`
}

// JudgesListResponse is the output of the list_judges tool.
type JudgesListResponse struct {
	Judges []JudgeInfo `json:"judges"`
}

// EvaluationResponse is the result of a single evaluator run.
type EvaluationResponse struct {
	EvaluatorName string `json:"evaluator_name"`
	// Score is expected to fall in [0, 1] but the range is not enforced here.
	Score          float64  `json:"score"`
	Justification  *string  `json:"justification,omitempty"`
	ExecutionLogID *string  `json:"execution_log_id,omitempty"`
	Cost           *float64 `json:"cost,omitempty"`
}

// JudgeEvaluatorResult is one sub-evaluator result within a judge run.
type JudgeEvaluatorResult struct {
	EvaluatorName string  `json:"evaluator_name"`
	Score         float64 `json:"score"`
	Justification string  `json:"justification"`
}

// RunJudgeResponse is the result of a judge run, one entry per constituent
// evaluator, in upstream order.
type RunJudgeResponse struct {
	EvaluatorResults []JudgeEvaluatorResult `json:"evaluator_results"`
}
