package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/hellofleet/ship/pkg/delivery/application/model"
)

type RevisionProvider interface {
	Hash(ctx context.Context) (model.Revision, error)
	BranchName(ctx context.Context) (string, error)
}

type SuiteRunner interface {
	Run(ctx context.Context) error
}

type ImageBuilder interface {
	Build(ctx context.Context, ref model.ImageRef) error
}

type ImagePublisher interface {
	Publish(ctx context.Context, ref model.ImageRef, credentials model.Credentials) error
}

type Pipeline interface {
	Test(ctx context.Context) (model.Run, error)
	Build(ctx context.Context) (model.Run, error)
	Publish(ctx context.Context, credentials model.Credentials) (model.Run, error)
	// Run executes the full pipeline for the configured trigger branch.
	Run(ctx context.Context, credentials model.Credentials, forceBranch bool) (model.Run, error)
}

func NewPipelineService(
	config model.Pipeline,
	logger applogger.Logger,
	revisionProvider RevisionProvider,
	suiteRunner SuiteRunner,
	imageBuilder ImageBuilder,
	imagePublisher ImagePublisher,
) Pipeline {
	return &pipeline{
		config:           config,
		logger:           logger,
		revisionProvider: revisionProvider,
		suiteRunner:      suiteRunner,
		imageBuilder:     imageBuilder,
		imagePublisher:   imagePublisher,
	}
}

type pipeline struct {
	config model.Pipeline

	logger           applogger.Logger
	revisionProvider RevisionProvider
	suiteRunner      SuiteRunner
	imageBuilder     ImageBuilder
	imagePublisher   ImagePublisher
}

type stage struct {
	id      model.StageID
	execute func(ctx context.Context) error
}

func (service pipeline) Test(ctx context.Context) (model.Run, error) {
	return service.executeStages(ctx, []stage{service.testStage()})
}

func (service pipeline) Build(ctx context.Context) (model.Run, error) {
	return service.executeStages(ctx, []stage{
		service.testStage(),
		service.buildStage(),
	})
}

func (service pipeline) Publish(ctx context.Context, credentials model.Credentials) (model.Run, error) {
	if credentials.Empty() {
		return model.Run{}, fmt.Errorf("registry credentials are not set")
	}
	return service.executeStages(ctx, []stage{
		service.testStage(),
		service.buildStage(),
		service.publishStage(credentials),
	})
}

func (service pipeline) Run(ctx context.Context, credentials model.Credentials, forceBranch bool) (model.Run, error) {
	branch, err := service.revisionProvider.BranchName(ctx)
	if err != nil {
		return model.Run{}, err
	}
	if branch != service.config.Branch {
		if !forceBranch {
			return model.Run{}, fmt.Errorf(
				"branch %q is not the trigger branch %q", branch, service.config.Branch,
			)
		}
		service.logger.Info(fmt.Sprintf("branch %q is not the trigger branch %q, forced run", branch, service.config.Branch))
	}
	return service.Publish(ctx, credentials)
}

// executeStages runs stages in order. The first failure marks every
// remaining stage skipped, so a later stage can never observe a failed
// predecessor as anything but a hard stop.
func (service pipeline) executeStages(ctx context.Context, stages []stage) (model.Run, error) {
	revision, err := service.revisionProvider.Hash(ctx)
	if err != nil {
		return model.Run{}, err
	}
	branch, err := service.revisionProvider.BranchName(ctx)
	if err != nil {
		return model.Run{}, err
	}

	ids := make([]model.StageID, 0, len(stages))
	for _, s := range stages {
		ids = append(ids, s.id)
	}
	run := model.NewRun(uuid.NewString(), branch, revision, ids)
	service.logger.Info(fmt.Sprintf("run %v: revision %v on branch %q", run.ID, revision.Short(), branch))

	for i, s := range stages {
		err := service.executeStage(ctx, &run.Stages[i], s)
		if err != nil {
			for j := i + 1; j < len(run.Stages); j++ {
				run.Stages[j].Status = model.StatusSkipped
			}
			return run, fmt.Errorf("stage %v failed: %w", s.id, err)
		}
	}
	return run, nil
}

func (service pipeline) executeStage(ctx context.Context, result *model.StageResult, s stage) error {
	service.logger.Info(fmt.Sprintf("start stage %q...", s.id))
	result.Status = model.StatusRunning
	result.StartedAt = time.Now()
	defer func() {
		result.FinishedAt = time.Now()
		service.logger.Info(fmt.Sprintf("stage %q %v in %v", s.id, result.Status, result.FinishedAt.Sub(result.StartedAt).String()))
	}()

	err := s.execute(ctx)
	if err != nil {
		result.Status = model.StatusFailed
		service.logger.Error(err, fmt.Sprintf("failed stage %q", s.id))
		return err
	}
	result.Status = model.StatusSucceeded
	return nil
}

func (service pipeline) testStage() stage {
	return stage{
		id:      model.StageTest,
		execute: service.suiteRunner.Run,
	}
}

func (service pipeline) buildStage() stage {
	return stage{
		id: model.StageBuild,
		execute: func(ctx context.Context) error {
			ref, err := service.imageRef(ctx)
			if err != nil {
				return err
			}
			return service.imageBuilder.Build(ctx, ref)
		},
	}
}

func (service pipeline) publishStage(credentials model.Credentials) stage {
	return stage{
		id: model.StagePublish,
		execute: func(ctx context.Context) error {
			ref, err := service.imageRef(ctx)
			if err != nil {
				return err
			}
			return service.imagePublisher.Publish(ctx, ref, credentials)
		},
	}
}

func (service pipeline) imageRef(ctx context.Context) (model.ImageRef, error) {
	revision, err := service.revisionProvider.Hash(ctx)
	if err != nil {
		return model.ImageRef{}, err
	}
	return model.ImageRef{
		Registry:  service.config.Registry,
		Namespace: service.config.Image.Namespace,
		Name:      service.config.Image.Name,
		Tag:       service.config.Image.TagBy.Tag(revision),
	}, nil
}
