package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
)

type Command struct {
	WorkDir    string
	Executable string
	Args       []string
	// Env holds extra KEY=VALUE entries appended to the process environment.
	Env []string
	// Stdin, when set, is piped to the command. Secret material goes here,
	// never into Args.
	Stdin io.Reader
	// Verbose streams command output to the current process while it runs.
	Verbose bool
}

type Runner interface {
	Execute(ctx context.Context, command Command) (string, error)
}

func NewCommandRunner(logger applogger.Logger, silentMode bool) Runner {
	return &runner{
		logger:     logger,
		silentMode: silentMode,
	}
}

type runner struct {
	logger     applogger.Logger
	silentMode bool
}

func (r runner) Execute(ctx context.Context, command Command) (string, error) {
	if command.Executable == "" {
		return "", errors.New("command executable can not be empty")
	}
	// nolint:gosec
	cmd := exec.CommandContext(ctx, command.Executable, command.Args...)
	cmd.Dir = command.WorkDir
	cmd.Stdin = command.Stdin
	if len(command.Env) > 0 {
		cmd.Env = append(os.Environ(), command.Env...)
	}
	r.logger.Debug(cmd.String())

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if command.Verbose && !r.silentMode {
		cmd.Stdout = io.MultiWriter(&output, os.Stdout)
		cmd.Stderr = io.MultiWriter(&output, os.Stderr)
	}
	err := cmd.Run()
	return output.String(), err
}
