//
// Tencent is pleased to support the open source community by making trpc-rootsignals-mcp available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-rootsignals-mcp is licensed under the Apache License Version 2.0.
//
//

package service

import (
	"context"

	"trpc.group/trpc-go/trpc-rootsignals-mcp/log"
	"trpc.group/trpc-go/trpc-rootsignals-mcp/schema"
)

// judgeRepository is the upstream surface JudgeService depends on.
type judgeRepository interface {
	ListJudges(ctx context.Context, maxCount int) ([]schema.JudgeInfo, error)
	RunJudge(ctx context.Context, judgeID, request, response string) (*schema.RunJudgeResponse, error)
}

// JudgeService exposes judge listing and execution workflows.
type JudgeService struct {
	repo judgeRepository
}

// NewJudgeService creates a service over the given repository.
func NewJudgeService(repo judgeRepository) *JudgeService {
	return &JudgeService{repo: repo}
}

// ListJudges returns up to maxCount judges in upstream order. A maxCount
// of 0 or less means the repository default.
func (s *JudgeService) ListJudges(ctx context.Context, maxCount int) (*schema.JudgesListResponse, error) {
	judges, err := s.repo.ListJudges(ctx, maxCount)
	if err != nil {
		return nil, wrapRepositoryError("cannot fetch judges", "invalid judges response", err)
	}
	log.Debugf("listed %d judges", len(judges))
	return &schema.JudgesListResponse{Judges: judges}, nil
}

// GetJudgeByID returns the listed judge with the given ID, or nil when no
// judge matches.
func (s *JudgeService) GetJudgeByID(ctx context.Context, judgeID string) (*schema.JudgeInfo, error) {
	list, err := s.ListJudges(ctx, 0)
	if err != nil {
		return nil, err
	}
	for i := range list.Judges {
		if list.Judges[i].ID == judgeID {
			return &list.Judges[i], nil
		}
	}
	return nil, nil
}

// RunJudge executes the judge identified by req.JudgeID. The judge name,
// when supplied, is only echoed into the log.
func (s *JudgeService) RunJudge(ctx context.Context, req *schema.RunJudgeRequest) (*schema.RunJudgeResponse, error) {
	if req.JudgeName != "" {
		log.Debugf("running judge %s (%s)", req.JudgeID, req.JudgeName)
	}
	result, err := s.repo.RunJudge(ctx, req.JudgeID, req.Request, req.Response)
	if err != nil {
		return nil, wrapRepositoryError("judge execution failed", "invalid judge response", err)
	}
	log.Debugf("judge completed: judge=%s evaluators=%d", req.JudgeID, len(result.EvaluatorResults))
	return result, nil
}
