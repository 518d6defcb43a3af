package tester

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

func NewSuiteRunner(
	workDir string,
	testCommand model.Command,
	runner command.Runner,
	logger applogger.Logger,
) service.SuiteRunner {
	return &suiteRunner{
		workDir:     workDir,
		testCommand: testCommand,
		runner:      runner,
		logger:      logger,
	}
}

type suiteRunner struct {
	workDir     string
	testCommand model.Command
	runner      command.Runner
	logger      applogger.Logger
}

func (t suiteRunner) Run(ctx stdcontext.Context) error {
	t.logger.Info(fmt.Sprintf("start test suite \"%v\"...", t.testCommand.Executable))
	start := time.Now()
	defer func() {
		t.logger.Info(fmt.Sprintf("done in %v", time.Since(start).String()))
	}()
	output, err := t.runner.Execute(ctx, command.Command{
		WorkDir:    t.workDir,
		Executable: t.testCommand.Executable,
		Args:       t.testCommand.Args,
		Verbose:    true,
	})
	if err != nil {
		t.logger.Debug(output)
		return errors.Wrap(err, "test suite failed")
	}
	return nil
}
