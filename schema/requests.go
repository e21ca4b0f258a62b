//
// Tencent is pleased to support the open source community by making trpc-rootsignals-mcp available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-rootsignals-mcp is licensed under the Apache License Version 2.0.
//
//

// Package schema defines the tool request records and the trimmed-down
// response records exchanged with the Root Signals API.
package schema

import (
	"fmt"
	"strings"
)

// ListEvaluatorsRequest is the (empty) input of the list_evaluators tool.
type ListEvaluatorsRequest struct{}

// ListJudgesRequest is the (empty) input of the list_judges tool.
type ListJudgesRequest struct{}

// EvaluationRequest is the input of the run_evaluation tool.
type EvaluationRequest struct {
	EvaluatorID string `json:"evaluator_id" jsonschema:"required,description=The ID of the evaluator to use"`
	Request     string `json:"request" jsonschema:"required,description=The user query to evaluate"`
	Response    string `json:"response" jsonschema:"required,description=The AI assistant's response to evaluate"`
}

// Validate reports whether the request is usable before any network call.
func (r *EvaluationRequest) Validate() error {
	if err := requireNonEmpty("evaluator_id", r.EvaluatorID); err != nil {
		return err
	}
	return validateQueryResponse(r.Request, r.Response)
}

// EvaluationByNameRequest is the input of the run_evaluation_by_name tool.
type EvaluationByNameRequest struct {
	EvaluatorName string `json:"evaluator_name" jsonschema:"required,description=The exact name of the evaluator as returned by the list_evaluators tool"`
	Request       string `json:"request" jsonschema:"required,description=The user query to evaluate"`
	Response      string `json:"response" jsonschema:"required,description=The AI assistant's response to evaluate"`
}

// Validate reports whether the request is usable before any network call.
func (r *EvaluationByNameRequest) Validate() error {
	if err := requireNonEmpty("evaluator_name", r.EvaluatorName); err != nil {
		return err
	}
	return validateQueryResponse(r.Request, r.Response)
}

// RAGEvaluationRequest is the input of the run_rag_evaluation tool.
type RAGEvaluationRequest struct {
	EvaluatorID string   `json:"evaluator_id" jsonschema:"required,description=The ID of the evaluator to use"`
	Request     string   `json:"request" jsonschema:"required,description=The user query to evaluate"`
	Response    string   `json:"response" jsonschema:"required,description=The AI assistant's response to evaluate"`
	Contexts    []string `json:"contexts,omitempty" jsonschema:"description=List of context strings required for the evaluation"`
}

// Validate reports whether the request is usable before any network call.
func (r *RAGEvaluationRequest) Validate() error {
	if err := requireNonEmpty("evaluator_id", r.EvaluatorID); err != nil {
		return err
	}
	return validateQueryResponse(r.Request, r.Response)
}

// RAGEvaluationByNameRequest is the input of the run_rag_evaluation_by_name tool.
type RAGEvaluationByNameRequest struct {
	EvaluatorName string   `json:"evaluator_name" jsonschema:"required,description=The exact name of the evaluator as returned by the list_evaluators tool"`
	Request       string   `json:"request" jsonschema:"required,description=The user query to evaluate"`
	Response      string   `json:"response" jsonschema:"required,description=The AI assistant's response to evaluate"`
	Contexts      []string `json:"contexts,omitempty" jsonschema:"description=List of context strings required for the evaluation"`
}

// Validate reports whether the request is usable before any network call.
func (r *RAGEvaluationByNameRequest) Validate() error {
	if err := requireNonEmpty("evaluator_name", r.EvaluatorName); err != nil {
		return err
	}
	return validateQueryResponse(r.Request, r.Response)
}

// CodingPolicyAdherenceRequest is the input of the run_coding_policy_adherence tool.
type CodingPolicyAdherenceRequest struct {
	PolicyDocuments []string `json:"policy_documents" jsonschema:"required,description=The policy documents describing the coding policy such as cursor rules file contents"`
	Code            string   `json:"code" jsonschema:"required,description=The code to evaluate"`
}

// Validate reports whether the request is usable before any network call.
func (r *CodingPolicyAdherenceRequest) Validate() error {
	if len(r.PolicyDocuments) == 0 {
		return fmt.Errorf("policy_documents cannot be empty")
	}
	return requireNonEmpty("code", r.Code)
}

// RunJudgeRequest is the input of the run_judge tool.
type RunJudgeRequest struct {
	JudgeID string `json:"judge_id" jsonschema:"required,description=The ID of the judge to use"`
	// JudgeName is accepted for logging purposes only.
	JudgeName string `json:"judge_name,omitempty" jsonschema:"description=The name of the judge to use. Only for logging purposes"`
	Request   string `json:"request" jsonschema:"required,description=The user query to evaluate"`
	Response  string `json:"response" jsonschema:"required,description=The AI assistant's response to evaluate"`
}

// Validate reports whether the request is usable before any network call.
func (r *RunJudgeRequest) Validate() error {
	if err := requireNonEmpty("judge_id", r.JudgeID); err != nil {
		return err
	}
	return validateQueryResponse(r.Request, r.Response)
}

func validateQueryResponse(request, response string) error {
	if err := requireNonEmpty("request", request); err != nil {
		return err
	}
	return requireNonEmpty("response", response)
}

func requireNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s cannot be empty", field)
	}
	return nil
}
