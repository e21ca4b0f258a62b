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
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluatorRecord(id, name string) map[string]any {
	return map[string]any{
		"id":                       id,
		"name":                     name,
		"created_at":               "2025-01-15T10:00:00Z",
		"requires_contexts":        false,
		"requires_expected_output": false,
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestListEvaluatorsPaginationTrims(t *testing.T) {
	// Three pages of 2+2+1; a cap of 3 stops after the second page and
	// trims the overshoot.
	pages := 0
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		switch r.URL.Path + "?" + r.URL.RawQuery {
		case "/v1/evaluators?":
			writeJSON(t, w, map[string]any{
				"results": []any{evaluatorRecord("e1", "Clarity"), evaluatorRecord("e2", "Relevance")},
				"next":    srv.URL + "/v1/evaluators?page=2",
			})
		case "/v1/evaluators?page=2":
			writeJSON(t, w, map[string]any{
				"results": []any{evaluatorRecord("e3", "Precision"), evaluatorRecord("e4", "Safety")},
				"next":    srv.URL + "/v1/evaluators?page=3",
			})
		default:
			t.Errorf("unexpected request: %s", r.URL)
		}
	}))
	defer srv.Close()

	repo := NewEvaluatorRepository(NewClient("key", srv.URL), 40)
	evaluators, err := repo.ListEvaluators(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, evaluators, 3)
	assert.Equal(t, 2, pages)
	assert.Equal(t, "e1", evaluators[0].ID)
	assert.Equal(t, "e3", evaluators[2].ID)
}

func TestListEvaluatorsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []any{evaluatorRecord("e1", "Clarity")})
	}))
	defer srv.Close()

	repo := NewEvaluatorRepository(NewClient("key", srv.URL), 40)
	evaluators, err := repo.ListEvaluators(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, evaluators, 1)
	assert.Equal(t, "Clarity", evaluators[0].Name)
}

func TestListEvaluatorsEmptyPageStops(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(t, w, map[string]any{
			"results": []any{},
			"next":    "/v1/evaluators?page=2",
		})
	}))
	defer srv.Close()

	repo := NewEvaluatorRepository(NewClient("key", srv.URL), 40)
	evaluators, err := repo.ListEvaluators(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, evaluators)
	assert.Equal(t, 1, calls)
}

func TestListEvaluatorsDefaultMax(t *testing.T) {
	records := make([]any, 5)
	for i := range records {
		records[i] = evaluatorRecord(fmt.Sprintf("e%d", i), fmt.Sprintf("Evaluator %d", i))
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"results": records, "next": nil})
	}))
	defer srv.Close()

	repo := NewEvaluatorRepository(NewClient("key", srv.URL), 2)
	evaluators, err := repo.ListEvaluators(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, evaluators, 2)
}

func TestListEvaluatorsMissingField(t *testing.T) {
	broken := evaluatorRecord("e2", "Relevance")
	delete(broken, "id")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"results": []any{evaluatorRecord("e1", "Clarity"), broken},
			"next":    nil,
		})
	}))
	defer srv.Close()

	repo := NewEvaluatorRepository(NewClient("key", srv.URL), 40)
	_, err := repo.ListEvaluators(context.Background(), 10)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Error(), "evaluator at index 1")
	assert.Contains(t, valErr.Error(), "'id'")
}

func TestListEvaluatorsMissingResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"count": 0})
	}))
	defer srv.Close()

	repo := NewEvaluatorRepository(NewClient("key", srv.URL), 40)
	_, err := repo.ListEvaluators(context.Background(), 10)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Error(), "'results'")
}

func TestListEvaluatorsIntentAndFlags(t *testing.T) {
	record := evaluatorRecord("e1", "Faithfulness")
	record["requires_contexts"] = true
	record["requires_expected_output"] = nil
	record["objective"] = map[string]any{"intent": "Detect hallucinated claims"}
	record["owner"] = map[string]any{"email": "x@example.com"} // Unknown fields are ignored.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"results": []any{record}, "next": nil})
	}))
	defer srv.Close()

	repo := NewEvaluatorRepository(NewClient("key", srv.URL), 40)
	evaluators, err := repo.ListEvaluators(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, evaluators, 1)

	got := evaluators[0]
	assert.True(t, got.RequiresContexts)
	assert.False(t, got.RequiresExpectedOutput)
	require.NotNil(t, got.Intent)
	assert.Equal(t, "Detect hallucinated claims", *got.Intent)
}

func TestRunEvaluator(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		writeJSON(t, w, map[string]any{
			"result": map[string]any{
				"evaluator_name":   "Clarity",
				"score":            0.85,
				"justification":    "Clear and well structured.",
				"execution_log_id": "log-123",
				"cost":             0.0021,
			},
		})
	}))
	defer srv.Close()

	repo := NewEvaluatorRepository(NewClient("key", srv.URL), 40)
	resp, err := repo.RunEvaluator(context.Background(), "eval-1", RunParams{
		Request:  "What is Go?",
		Response: "A programming language.",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/evaluators/execute/eval-1/", gotPath)
	assert.Equal(t, "What is Go?", gotPayload["request"])
	assert.NotContains(t, gotPayload, "contexts")
	assert.NotContains(t, gotPayload, "expected_output")

	assert.Equal(t, "Clarity", resp.EvaluatorName)
	assert.Equal(t, 0.85, resp.Score)
	require.NotNil(t, resp.Justification)
	assert.Equal(t, "Clear and well structured.", *resp.Justification)
	require.NotNil(t, resp.ExecutionLogID)
	assert.Equal(t, "log-123", *resp.ExecutionLogID)
	require.NotNil(t, resp.Cost)
	assert.Equal(t, 0.0021, *resp.Cost)
}

func TestRunEvaluatorFlatResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"evaluator_name": "Clarity",
			"score":          1.0,
			"extra":          "ignored",
		})
	}))
	defer srv.Close()

	repo := NewEvaluatorRepository(NewClient("key", srv.URL), 40)
	resp, err := repo.RunEvaluator(context.Background(), "eval-1", RunParams{Request: "q", Response: "a"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, resp.Score)
	assert.Nil(t, resp.Justification)
	assert.Nil(t, resp.Cost)
}

func TestRunEvaluatorStringScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"evaluator_name": "Clarity", "score": "0.9"})
	}))
	defer srv.Close()

	repo := NewEvaluatorRepository(NewClient("key", srv.URL), 40)
	_, err := repo.RunEvaluator(context.Background(), "eval-1", RunParams{Request: "q", Response: "a"})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Error(), "expected 'score' to be a number, got string")
}

func TestRunEvaluatorMissingScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"evaluator_name": "Clarity"})
	}))
	defer srv.Close()

	repo := NewEvaluatorRepository(NewClient("key", srv.URL), 40)
	_, err := repo.RunEvaluator(context.Background(), "eval-1", RunParams{Request: "q", Response: "a"})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Error(), "missing required field in evaluation response: 'score'")
}

func TestRunEvaluatorByName(t *testing.T) {
	var gotQuery string
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("name")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		writeJSON(t, w, map[string]any{"evaluator_name": "Faithfulness", "score": 0.4})
	}))
	defer srv.Close()

	repo := NewEvaluatorRepository(NewClient("key", srv.URL), 40)
	resp, err := repo.RunEvaluatorByName(context.Background(), "Faithfulness", RunParams{
		Request:        "q",
		Response:       "a",
		Contexts:       []string{"ctx one", "ctx two"},
		ExpectedOutput: "expected",
	})
	require.NoError(t, err)

	assert.Equal(t, "Faithfulness", gotQuery)
	assert.Equal(t, []any{"ctx one", "ctx two"}, gotPayload["contexts"])
	assert.Equal(t, "expected", gotPayload["expected_output"])
	assert.Equal(t, 0.4, resp.Score)
}

func TestRunEvaluatorUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(t, w, map[string]any{"detail": "Not found."})
	}))
	defer srv.Close()

	repo := NewEvaluatorRepository(NewClient("key", srv.URL), 40)
	_, err := repo.RunEvaluator(context.Background(), "nope", RunParams{Request: "q", Response: "a"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Root Signals API error (HTTP 404): Not found.", apiErr.Error())
}
