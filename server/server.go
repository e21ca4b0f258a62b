//
// Tencent is pleased to support the open source community by making trpc-rootsignals-mcp available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-rootsignals-mcp is licensed under the Apache License Version 2.0.
//
//

// Package server exposes the evaluation services as MCP tools over stdio
// or streamable HTTP transports.
package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	mcp "trpc.group/trpc-go/trpc-mcp-go"

	"trpc.group/trpc-go/trpc-rootsignals-mcp/log"
	"trpc.group/trpc-go/trpc-rootsignals-mcp/schema"
	"trpc.group/trpc-go/trpc-rootsignals-mcp/service"
	"trpc.group/trpc-go/trpc-rootsignals-mcp/settings"
)

const serverName = "RootSignals Evaluators"

// Server owns the tool catalog and dispatches tool calls to the services.
type Server struct {
	cfg        *settings.Settings
	evaluators *service.EvaluatorService
	judges     *service.JudgeService
}

// New creates a Server over the given services.
func New(cfg *settings.Settings, evaluators *service.EvaluatorService, judges *service.JudgeService) *Server {
	return &Server{cfg: cfg, evaluators: evaluators, judges: judges}
}

// toolSpec pairs one tool definition with its handler.
type toolSpec struct {
	tool    *mcp.Tool
	handler func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// tools builds the full tool catalog. Each transport registers the same
// set.
func (s *Server) tools() []toolSpec {
	return []toolSpec{
		{
			tool: mcp.NewTool("list_evaluators",
				mcp.WithDescription("List all available Root Signals evaluators"),
				mcp.WithInputStruct[schema.ListEvaluatorsRequest](),
			),
			handler: handle("list_evaluators",
				func(ctx context.Context, _ *schema.ListEvaluatorsRequest) (any, error) {
					return s.evaluators.ListEvaluators(ctx, s.cfg.MaxEvaluators)
				}),
		},
		{
			tool: mcp.NewTool("run_evaluation",
				mcp.WithDescription("Run a standard evaluation using a Root Signals evaluator by ID"),
				mcp.WithInputStruct[schema.EvaluationRequest](),
			),
			handler: handle("run_evaluation",
				func(ctx context.Context, req *schema.EvaluationRequest) (any, error) {
					return s.evaluators.RunEvaluation(ctx, req)
				}),
		},
		{
			tool: mcp.NewTool("run_evaluation_by_name",
				mcp.WithDescription("Run a standard evaluation using a Root Signals evaluator by name"),
				mcp.WithInputStruct[schema.EvaluationByNameRequest](),
			),
			handler: handle("run_evaluation_by_name",
				func(ctx context.Context, req *schema.EvaluationByNameRequest) (any, error) {
					return s.evaluators.RunEvaluationByName(ctx, req)
				}),
		},
		{
			tool: mcp.NewTool("run_rag_evaluation",
				mcp.WithDescription("Run a RAG evaluation with contexts using a Root Signals evaluator by ID"),
				mcp.WithInputStruct[schema.RAGEvaluationRequest](),
			),
			handler: handle("run_rag_evaluation",
				func(ctx context.Context, req *schema.RAGEvaluationRequest) (any, error) {
					return s.evaluators.RunRAGEvaluation(ctx, req)
				}),
		},
		{
			tool: mcp.NewTool("run_rag_evaluation_by_name",
				mcp.WithDescription("Run a RAG evaluation with contexts using a Root Signals evaluator by name"),
				mcp.WithInputStruct[schema.RAGEvaluationByNameRequest](),
			),
			handler: handle("run_rag_evaluation_by_name",
				func(ctx context.Context, req *schema.RAGEvaluationByNameRequest) (any, error) {
					return s.evaluators.RunRAGEvaluationByName(ctx, req)
				}),
		},
		{
			tool: mcp.NewTool("run_coding_policy_adherence",
				mcp.WithDescription("Evaluate code against coding policy documents such as AI rules files"),
				mcp.WithInputStruct[schema.CodingPolicyAdherenceRequest](),
			),
			handler: handle("run_coding_policy_adherence",
				func(ctx context.Context, req *schema.CodingPolicyAdherenceRequest) (any, error) {
					return s.evaluators.RunRAGEvaluation(ctx, &schema.RAGEvaluationRequest{
						EvaluatorID: s.cfg.CodingPolicyEvaluatorID,
						Request:     s.cfg.CodingPolicyEvaluatorRequest,
						Response:    req.Code,
						Contexts:    req.PolicyDocuments,
					})
				}),
		},
		{
			tool: mcp.NewTool("list_judges",
				mcp.WithDescription("List all available Root Signals judges. A judge is a collection of evaluators forming LLM-as-a-judge"),
				mcp.WithInputStruct[schema.ListJudgesRequest](),
			),
			handler: handle("list_judges",
				func(ctx context.Context, _ *schema.ListJudgesRequest) (any, error) {
					return s.judges.ListJudges(ctx, s.cfg.MaxJudges)
				}),
		},
		{
			tool: mcp.NewTool("run_judge",
				mcp.WithDescription("Run a Root Signals judge by ID"),
				mcp.WithInputStruct[schema.RunJudgeRequest](),
			),
			handler: handle("run_judge",
				func(ctx context.Context, req *schema.RunJudgeRequest) (any, error) {
					return s.judges.RunJudge(ctx, req)
				}),
		},
	}
}

// handle adapts a typed tool function to the MCP handler signature. The
// raw arguments are decoded and validated first, the result serialized as
// JSON text. Failures never propagate as protocol errors: they come back
// to the model as an error payload it can read and act on.
func handle[T any](name string, fn func(ctx context.Context, req *T) (any, error)) func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := uuid.NewString()
		log.Debugf("tool call %s: %s", callID, name)

		var input T
		if err := schema.DecodeArguments(req.Params.Arguments, &input); err != nil {
			log.Warnf("tool call %s: invalid arguments: %v", callID, err)
			return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		result, err := fn(ctx, &input)
		if err != nil {
			log.Warnf("tool call %s: %s failed: %v", callID, name, err)
			return errorResult(err.Error()), nil
		}

		data, err := json.Marshal(result)
		if err != nil {
			log.Errorf("tool call %s: cannot serialize result: %v", callID, err)
			return errorResult(fmt.Sprintf("cannot serialize result: %v", err)), nil
		}
		log.Debugf("tool call %s: %s ok", callID, name)
		return mcp.NewTextResult(string(data)), nil
	}
}

// errorResult wraps a failure message in the {"error": ...} payload the
// tools promise on any failure.
func errorResult(message string) *mcp.CallToolResult {
	data, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		return mcp.NewErrorResult(message)
	}
	return mcp.NewTextResult(string(data))
}
