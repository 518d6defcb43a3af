package dependency

import (
	"context"
	"errors"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/hellofleet/ship/pkg/delivery/application/model"
	"github.com/hellofleet/ship/pkg/delivery/application/service"
	"github.com/hellofleet/ship/pkg/delivery/infrastructure/builder"
	"github.com/hellofleet/ship/pkg/delivery/infrastructure/command"
	"github.com/hellofleet/ship/pkg/delivery/infrastructure/provider"
	"github.com/hellofleet/ship/pkg/delivery/infrastructure/registry"
	"github.com/hellofleet/ship/pkg/delivery/infrastructure/tester"
)

var dependencyContainer = struct{}{}

type Container interface {
	Pipeline() service.Pipeline
	RevisionProvider() service.RevisionProvider
}

func NewDependencyContainer(
	logger applogger.Logger,
	pipelineConfig model.Pipeline,
	workDir string,
	silentMode bool,
) Container {
	runner := command.NewCommandRunner(logger, silentMode)
	revisionProvider := provider.NewRevisionProvider(workDir, runner)
	suiteRunner := tester.NewSuiteRunner(workDir, pipelineConfig.Test, runner, logger)
	imageBuilder := builder.NewImageBuilder(workDir, pipelineConfig.Image, runner, logger)
	imagePublisher := registry.NewImagePublisher(runner, logger)
	pipelineService := service.NewPipelineService(
		pipelineConfig, logger, revisionProvider, suiteRunner, imageBuilder, imagePublisher,
	)

	return &container{
		pipeline:         pipelineService,
		revisionProvider: revisionProvider,
	}
}

type container struct {
	pipeline         service.Pipeline
	revisionProvider service.RevisionProvider
}

func (c *container) Pipeline() service.Pipeline {
	return c.pipeline
}

func (c *container) RevisionProvider() service.RevisionProvider {
	return c.revisionProvider
}

func ContainerFromContext(ctx context.Context) (Container, error) {
	v := ctx.Value(dependencyContainer)
	if c, ok := v.(Container); ok {
		return c, nil
	}
	return nil, errors.New("dependency container not found")
}

func ContainerToContext(ctx context.Context, c Container) context.Context {
	return context.WithValue(ctx, dependencyContainer, c)
}
