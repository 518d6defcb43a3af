package provider

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/hellofleet/ship/pkg/delivery/application/model"
	"github.com/hellofleet/ship/pkg/delivery/application/service"
	"github.com/hellofleet/ship/pkg/delivery/infrastructure/command"
)

func NewRevisionProvider(
	workDir string,
	runner command.Runner,
) service.RevisionProvider {
	return &revisionProvider{
		workDir: workDir,
		runner:  runner,
	}
}

type revisionProvider struct {
	workDir string
	runner  command.Runner
}

func (provider revisionProvider) Hash(ctx context.Context) (model.Revision, error) {
	output, err := provider.runner.Execute(ctx, command.Command{
		WorkDir:    provider.workDir,
		Executable: "git",
		Args:       []string{"rev-parse", "HEAD"},
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve revision hash")
	}
	return model.Revision(strings.TrimSpace(output)), nil
}

func (provider revisionProvider) BranchName(ctx context.Context) (string, error) {
	output, err := provider.runner.Execute(ctx, command.Command{
		WorkDir:    provider.workDir,
		Executable: "git",
		Args:       []string{"rev-parse", "--abbrev-ref", "HEAD"},
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve branch name")
	}
	return strings.TrimSpace(output), nil
}
