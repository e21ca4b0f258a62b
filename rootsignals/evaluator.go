//
// Tencent is pleased to support the open source community by making trpc-rootsignals-mcp available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-rootsignals-mcp is licensed under the Apache License Version 2.0.
//
//

package rootsignals

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"trpc.group/trpc-go/trpc-rootsignals-mcp/schema"
)

const (
	evaluatorsPath         = "/v1/evaluators"
	runEvaluatorPath       = "/v1/evaluators/execute/%s/"
	runEvaluatorByNamePath = "/v1/evaluators/execute/by-name/"
)

// RunParams carries the inputs of one evaluator execution. Contexts and
// ExpectedOutput are included in the upstream payload only when non-empty.
type RunParams struct {
	Request        string
	Response       string
	Contexts       []string
	ExpectedOutput string
}

// EvaluatorRepository paginates and runs Root Signals evaluators.
type EvaluatorRepository struct {
	client     *Client
	defaultMax int
}

// NewEvaluatorRepository creates a repository over client. defaultMax caps
// listings when the caller does not ask for a specific count.
func NewEvaluatorRepository(client *Client, defaultMax int) *EvaluatorRepository {
	return &EvaluatorRepository{client: client, defaultMax: defaultMax}
}

// ListEvaluators fetches up to maxCount evaluators, following pagination.
// A maxCount of 0 or less means the repository default. Records are
// returned in upstream order, untouched.
func (r *EvaluatorRepository) ListEvaluators(ctx context.Context, maxCount int) ([]schema.EvaluatorInfo, error) {
	if maxCount <= 0 {
		maxCount = r.defaultMax
	}
	raw, err := r.client.fetchPaginated(ctx, evaluatorsPath, maxCount)
	if err != nil {
		return nil, err
	}

	evaluators := make([]schema.EvaluatorInfo, 0, len(raw))
	for i, record := range raw {
		info, err := parseEvaluatorRecord(i, record)
		if err != nil {
			return nil, err
		}
		evaluators = append(evaluators, *info)
	}
	return evaluators, nil
}

// RunEvaluator executes the evaluator identified by evaluatorID.
func (r *EvaluatorRepository) RunEvaluator(ctx context.Context, evaluatorID string, params RunParams) (*schema.EvaluationResponse, error) {
	data, err := r.client.request(ctx, http.MethodPost,
		fmt.Sprintf(runEvaluatorPath, url.PathEscape(evaluatorID)), nil, buildRunPayload(params))
	if err != nil {
		return nil, err
	}
	return parseEvaluationResult(data)
}

// RunEvaluatorByName executes the evaluator with the given exact display
// name, carried as a query parameter.
func (r *EvaluatorRepository) RunEvaluatorByName(ctx context.Context, evaluatorName string, params RunParams) (*schema.EvaluationResponse, error) {
	query := url.Values{"name": {evaluatorName}}
	data, err := r.client.request(ctx, http.MethodPost, runEvaluatorByNamePath, query, buildRunPayload(params))
	if err != nil {
		return nil, err
	}
	return parseEvaluationResult(data)
}

func buildRunPayload(params RunParams) map[string]any {
	payload := map[string]any{
		"request":  params.Request,
		"response": params.Response,
	}
	if len(params.Contexts) > 0 {
		payload["contexts"] = params.Contexts
	}
	if params.ExpectedOutput != "" {
		payload["expected_output"] = params.ExpectedOutput
	}
	return payload
}

// parseEvaluatorRecord maps one raw listing record to an EvaluatorInfo.
// Required fields must exist with the right type; unknown fields are
// dropped, and the nested objective.intent field is hoisted to Intent.
func parseEvaluatorRecord(index int, record map[string]any) (*schema.EvaluatorInfo, error) {
	id, err := requiredStringField(record, index, "evaluator", "id")
	if err != nil {
		return nil, err
	}
	name, err := requiredStringField(record, index, "evaluator", "name")
	if err != nil {
		return nil, err
	}
	createdAt, err := requiredStringField(record, index, "evaluator", "created_at")
	if err != nil {
		return nil, err
	}
	requiresContexts, err := requiredBoolField(record, index, "evaluator", "requires_contexts")
	if err != nil {
		return nil, err
	}
	requiresExpectedOutput, err := requiredBoolField(record, index, "evaluator", "requires_expected_output")
	if err != nil {
		return nil, err
	}

	info := &schema.EvaluatorInfo{
		ID:                     id,
		Name:                   name,
		CreatedAt:              createdAt,
		RequiresContexts:       requiresContexts,
		RequiresExpectedOutput: requiresExpectedOutput,
	}
	if objective, ok := record["objective"].(map[string]any); ok {
		if intent, ok := objective["intent"].(string); ok {
			info.Intent = &intent
		}
	}
	return info, nil
}

// parseEvaluationResult maps a run response into an EvaluationResponse.
// The payload may wrap the fields in a "result" sub-object. Unknown extra
// fields are ignored; a missing required field or a mistyped score is a
// validation error.
func parseEvaluationResult(data any) (*schema.EvaluationResponse, error) {
	result, err := unwrapResult(data)
	if err != nil {
		return nil, err
	}

	nameVal, ok := result["evaluator_name"]
	if !ok {
		return nil, &ValidationError{
			Message: "missing required field in evaluation response: 'evaluator_name'",
			Data:    result,
		}
	}
	name, ok := nameVal.(string)
	if !ok {
		return nil, &ValidationError{
			Message: fmt.Sprintf("expected 'evaluator_name' to be a string, got %s", jsonTypeName(nameVal)),
			Data:    result,
		}
	}
	score, err := requiredScore(result, "evaluation response")
	if err != nil {
		return nil, err
	}

	resp := &schema.EvaluationResponse{
		EvaluatorName: name,
		Score:         score,
	}
	if justification, ok := result["justification"].(string); ok {
		resp.Justification = &justification
	}
	if logID, ok := result["execution_log_id"].(string); ok {
		resp.ExecutionLogID = &logID
	}
	if cost, ok := result["cost"].(float64); ok {
		resp.Cost = &cost
	}
	return resp, nil
}

// unwrapResult returns the "result" sub-object when present, the top-level
// object otherwise, and rejects anything that is not an object.
func unwrapResult(data any) (map[string]any, error) {
	obj, ok := data.(map[string]any)
	if !ok {
		return nil, &ValidationError{
			Message: fmt.Sprintf("expected response to be an object, got %s", jsonTypeName(data)),
			Data:    data,
		}
	}
	sub, ok := obj["result"]
	if !ok {
		return obj, nil
	}
	result, ok := sub.(map[string]any)
	if !ok {
		return nil, &ValidationError{
			Message: "expected result data to be an object",
			Data:    sub,
		}
	}
	return result, nil
}

func requiredScore(result map[string]any, where string) (float64, error) {
	scoreVal, ok := result["score"]
	if !ok {
		return 0, &ValidationError{
			Message: fmt.Sprintf("missing required field in %s: 'score'", where),
			Data:    result,
		}
	}
	score, ok := scoreVal.(float64)
	if !ok {
		return 0, &ValidationError{
			Message: fmt.Sprintf("expected 'score' to be a number, got %s", jsonTypeName(scoreVal)),
			Data:    result,
		}
	}
	return score, nil
}

func requiredStringField(record map[string]any, index int, kind, field string) (string, error) {
	value, ok := record[field]
	if !ok {
		return "", &ValidationError{
			Message: fmt.Sprintf("%s at index %d missing required field: '%s'", kind, index, field),
			Data:    record,
		}
	}
	s, ok := value.(string)
	if !ok {
		return "", &ValidationError{
			Message: fmt.Sprintf("%s at index %d field '%s': expected string, got %s",
				kind, index, field, jsonTypeName(value)),
			Data: record,
		}
	}
	return s, nil
}

func requiredBoolField(record map[string]any, index int, kind, field string) (bool, error) {
	value, ok := record[field]
	if !ok {
		return false, &ValidationError{
			Message: fmt.Sprintf("%s at index %d missing required field: '%s'", kind, index, field),
			Data:    record,
		}
	}
	// A null flag is treated as false, matching upstream records that carry
	// the key without a value.
	if value == nil {
		return false, nil
	}
	b, ok := value.(bool)
	if !ok {
		return false, &ValidationError{
			Message: fmt.Sprintf("%s at index %d field '%s': expected boolean, got %s",
				kind, index, field, jsonTypeName(value)),
			Data: record,
		}
	}
	return b, nil
}
