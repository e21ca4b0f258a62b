//
// Tencent is pleased to support the open source community by making trpc-rootsignals-mcp available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-rootsignals-mcp is licensed under the Apache License Version 2.0.
//
//

// Package service hosts the evaluation workflows behind the exposed tools.
// It orchestrates the upstream repositories and converts their typed
// failures into plain errors, so callers above this layer never branch on
// transport details.
package service

import (
	"context"
	"errors"
	"fmt"

	"trpc.group/trpc-go/trpc-rootsignals-mcp/log"
	"trpc.group/trpc-go/trpc-rootsignals-mcp/rootsignals"
	"trpc.group/trpc-go/trpc-rootsignals-mcp/schema"
)

// evaluatorRepository is the upstream surface EvaluatorService depends on.
type evaluatorRepository interface {
	ListEvaluators(ctx context.Context, maxCount int) ([]schema.EvaluatorInfo, error)
	RunEvaluator(ctx context.Context, evaluatorID string, params rootsignals.RunParams) (*schema.EvaluationResponse, error)
	RunEvaluatorByName(ctx context.Context, evaluatorName string, params rootsignals.RunParams) (*schema.EvaluationResponse, error)
}

// EvaluatorService exposes evaluator listing and execution workflows.
type EvaluatorService struct {
	repo evaluatorRepository
}

// NewEvaluatorService creates a service over the given repository.
func NewEvaluatorService(repo evaluatorRepository) *EvaluatorService {
	return &EvaluatorService{repo: repo}
}

// ListEvaluators returns up to maxCount evaluators in upstream order.
// A maxCount of 0 or less means the repository default.
func (s *EvaluatorService) ListEvaluators(ctx context.Context, maxCount int) (*schema.EvaluatorsListResponse, error) {
	evaluators, err := s.repo.ListEvaluators(ctx, maxCount)
	if err != nil {
		return nil, wrapRepositoryError("cannot fetch evaluators", "invalid evaluators response", err)
	}
	log.Debugf("listed %d evaluators", len(evaluators))
	return &schema.EvaluatorsListResponse{Evaluators: evaluators}, nil
}

// GetEvaluatorByID returns the listed evaluator with the given ID, or nil
// when no evaluator matches.
func (s *EvaluatorService) GetEvaluatorByID(ctx context.Context, evaluatorID string) (*schema.EvaluatorInfo, error) {
	list, err := s.ListEvaluators(ctx, 0)
	if err != nil {
		return nil, err
	}
	for i := range list.Evaluators {
		if list.Evaluators[i].ID == evaluatorID {
			return &list.Evaluators[i], nil
		}
	}
	return nil, nil
}

// RunEvaluation runs the evaluator identified by ID against a
// request/response pair.
func (s *EvaluatorService) RunEvaluation(ctx context.Context, req *schema.EvaluationRequest) (*schema.EvaluationResponse, error) {
	result, err := s.repo.RunEvaluator(ctx, req.EvaluatorID, rootsignals.RunParams{
		Request:  req.Request,
		Response: req.Response,
	})
	if err != nil {
		return nil, wrapRepositoryError("failed to run evaluation", "invalid evaluation response", err)
	}
	log.Debugf("evaluation completed: evaluator=%s score=%.3f", result.EvaluatorName, result.Score)
	return result, nil
}

// RunEvaluationByName runs the evaluator with the given exact display name.
func (s *EvaluatorService) RunEvaluationByName(ctx context.Context, req *schema.EvaluationByNameRequest) (*schema.EvaluationResponse, error) {
	result, err := s.repo.RunEvaluatorByName(ctx, req.EvaluatorName, rootsignals.RunParams{
		Request:  req.Request,
		Response: req.Response,
	})
	if err != nil {
		return nil, wrapRepositoryError("failed to run evaluation by name", "invalid evaluation response", err)
	}
	log.Debugf("evaluation by name completed: evaluator=%s score=%.3f", result.EvaluatorName, result.Score)
	return result, nil
}

// RunRAGEvaluation runs the evaluator identified by ID with retrieval
// contexts attached.
func (s *EvaluatorService) RunRAGEvaluation(ctx context.Context, req *schema.RAGEvaluationRequest) (*schema.EvaluationResponse, error) {
	result, err := s.repo.RunEvaluator(ctx, req.EvaluatorID, rootsignals.RunParams{
		Request:  req.Request,
		Response: req.Response,
		Contexts: req.Contexts,
	})
	if err != nil {
		return nil, wrapRepositoryError("failed to run evaluation", "invalid evaluation response", err)
	}
	log.Debugf("rag evaluation completed: evaluator=%s score=%.3f contexts=%d",
		result.EvaluatorName, result.Score, len(req.Contexts))
	return result, nil
}

// RunRAGEvaluationByName runs the evaluator with the given exact display
// name with retrieval contexts attached.
func (s *EvaluatorService) RunRAGEvaluationByName(ctx context.Context, req *schema.RAGEvaluationByNameRequest) (*schema.EvaluationResponse, error) {
	result, err := s.repo.RunEvaluatorByName(ctx, req.EvaluatorName, rootsignals.RunParams{
		Request:  req.Request,
		Response: req.Response,
		Contexts: req.Contexts,
	})
	if err != nil {
		return nil, wrapRepositoryError("failed to run evaluation by name", "invalid evaluation response", err)
	}
	log.Debugf("rag evaluation by name completed: evaluator=%s score=%.3f contexts=%d",
		result.EvaluatorName, result.Score, len(req.Contexts))
	return result, nil
}

// wrapRepositoryError flattens a repository failure into a plain error.
// Validation failures get the invalidMsg prefix, everything else the
// upstreamMsg prefix. The typed error is formatted in, not wrapped, so the
// taxonomy stays private to the rootsignals package.
func wrapRepositoryError(upstreamMsg, invalidMsg string, err error) error {
	var valErr *rootsignals.ValidationError
	if errors.As(err, &valErr) {
		log.Warnf("%s: %v", invalidMsg, err)
		log.Debugf("offending response data: %v", valErr.Data)
		return fmt.Errorf("%s: %v", invalidMsg, err)
	}
	log.Warnf("%s: %v", upstreamMsg, err)
	return fmt.Errorf("%s: %v", upstreamMsg, err)
}
