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
	judgesPath   = "/v1/judges"
	runJudgePath = "/v1/judges/%s/execute/"
)

// JudgeRepository paginates and runs Root Signals judges.
type JudgeRepository struct {
	client     *Client
	defaultMax int
}

// NewJudgeRepository creates a repository over client. defaultMax caps
// listings when the caller does not ask for a specific count.
func NewJudgeRepository(client *Client, defaultMax int) *JudgeRepository {
	return &JudgeRepository{client: client, defaultMax: defaultMax}
}

// ListJudges fetches up to maxCount judges, following pagination. A
// maxCount of 0 or less means the repository default. Records are returned
// in upstream order, untouched.
func (r *JudgeRepository) ListJudges(ctx context.Context, maxCount int) ([]schema.JudgeInfo, error) {
	if maxCount <= 0 {
		maxCount = r.defaultMax
	}
	raw, err := r.client.fetchPaginated(ctx, judgesPath, maxCount)
	if err != nil {
		return nil, err
	}

	judges := make([]schema.JudgeInfo, 0, len(raw))
	for i, record := range raw {
		info, err := parseJudgeRecord(i, record)
		if err != nil {
			return nil, err
		}
		judges = append(judges, *info)
	}
	return judges, nil
}

// RunJudge executes the judge identified by judgeID against the given
// request/response pair and returns one result per constituent evaluator.
func (r *JudgeRepository) RunJudge(ctx context.Context, judgeID, request, response string) (*schema.RunJudgeResponse, error) {
	payload := map[string]any{
		"request":  request,
		"response": response,
	}
	data, err := r.client.request(ctx, http.MethodPost,
		fmt.Sprintf(runJudgePath, url.PathEscape(judgeID)), nil, payload)
	if err != nil {
		return nil, err
	}
	return parseJudgeResult(data)
}

func parseJudgeRecord(index int, record map[string]any) (*schema.JudgeInfo, error) {
	id, err := requiredStringField(record, index, "judge", "id")
	if err != nil {
		return nil, err
	}
	name, err := requiredStringField(record, index, "judge", "name")
	if err != nil {
		return nil, err
	}
	createdAt, err := requiredStringField(record, index, "judge", "created_at")
	if err != nil {
		return nil, err
	}

	info := &schema.JudgeInfo{
		ID:        id,
		Name:      name,
		CreatedAt: createdAt,
	}
	if description, ok := record["description"].(string); ok {
		info.Description = &description
	}
	return info, nil
}

// parseJudgeResult maps a judge run response into an ordered list of
// sub-evaluator results. Each entry requires evaluator_name, a numeric
// score, and a justification.
func parseJudgeResult(data any) (*schema.RunJudgeResponse, error) {
	result, err := unwrapResult(data)
	if err != nil {
		return nil, err
	}

	rawResults, ok := result["evaluator_results"]
	if !ok {
		return nil, &ValidationError{
			Message: "missing required field in judge response: 'evaluator_results'",
			Data:    result,
		}
	}
	entries, ok := rawResults.([]any)
	if !ok {
		return nil, &ValidationError{
			Message: fmt.Sprintf("expected 'evaluator_results' to be an array, got %s", jsonTypeName(rawResults)),
			Data:    result,
		}
	}

	results := make([]schema.JudgeEvaluatorResult, 0, len(entries))
	for i, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			return nil, &ValidationError{
				Message: fmt.Sprintf("evaluator result at index %d is not an object, got %s", i, jsonTypeName(raw)),
				Data:    raw,
			}
		}
		name, err := requiredStringField(entry, i, "evaluator result", "evaluator_name")
		if err != nil {
			return nil, err
		}
		score, err := requiredScore(entry, fmt.Sprintf("evaluator result at index %d", i))
		if err != nil {
			return nil, err
		}
		justification, err := requiredStringField(entry, i, "evaluator result", "justification")
		if err != nil {
			return nil, err
		}
		results = append(results, schema.JudgeEvaluatorResult{
			EvaluatorName: name,
			Score:         score,
			Justification: justification,
		})
	}
	return &schema.RunJudgeResponse{EvaluatorResults: results}, nil
}
