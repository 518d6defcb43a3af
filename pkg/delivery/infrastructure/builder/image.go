package builder

import (
	stdcontext "context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/hellofleet/ship/pkg/delivery/application/model"
	"github.com/hellofleet/ship/pkg/delivery/application/service"
	"github.com/hellofleet/ship/pkg/delivery/infrastructure/command"
)

func NewImageBuilder(
	workDir string,
	image model.Image,
	runner command.Runner,
	logger applogger.Logger,
) service.ImageBuilder {
	return &imageBuilder{
		workDir: workDir,
		image:   image,
		runner:  runner,
		logger:  logger,
	}
}

type imageBuilder struct {
	workDir string
	image   model.Image
	runner  command.Runner
	logger  applogger.Logger
}

func (builder imageBuilder) Build(ctx stdcontext.Context, ref model.ImageRef) error {
	builder.logger.Info(fmt.Sprintf("start build image \"%v\"...", ref))
	start := time.Now()
	defer func() {
		builder.logger.Info(fmt.Sprintf("done in %v", time.Since(start).String()))
	}()
	output, err := builder.runner.Execute(ctx, command.Command{
		WorkDir:    builder.workDir,
		Executable: "docker",
		Args: []string{
			"build",
			"--file", builder.image.Dockerfile,
			"--tag", ref.String(),
			builder.image.Context,
		},
		Verbose: true,
	})
	if err != nil {
		builder.logger.Debug(output)
		return errors.Wrapf(err, "failed to build image %v", ref)
	}
	return nil
}
