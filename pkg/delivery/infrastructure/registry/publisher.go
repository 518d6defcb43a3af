package registry

import (
	stdcontext "context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/hellofleet/ship/pkg/delivery/application/model"
	"github.com/hellofleet/ship/pkg/delivery/application/service"
	"github.com/hellofleet/ship/pkg/delivery/infrastructure/command"
)

func NewImagePublisher(
	runner command.Runner,
	logger applogger.Logger,
) service.ImagePublisher {
	return &imagePublisher{
		runner: runner,
		logger: logger,
	}
}

type imagePublisher struct {
	runner command.Runner
	logger applogger.Logger
}

func (publisher imagePublisher) Publish(
	ctx stdcontext.Context,
	ref model.ImageRef,
	credentials model.Credentials,
) error {
	if credentials.Empty() {
		return errors.New("registry credentials are not set")
	}
	err := publisher.login(ctx, ref.Registry, credentials)
	if err != nil {
		return err
	}
	defer publisher.logout(ctx, ref.Registry)

	publisher.logger.Info(fmt.Sprintf("start push image \"%v\"...", ref))
	start := time.Now()
	defer func() {
		publisher.logger.Info(fmt.Sprintf("done in %v", time.Since(start).String()))
	}()
	output, err := publisher.runner.Execute(ctx, command.Command{
		Executable: "docker",
		Args:       []string{"push", ref.String()},
		Verbose:    true,
	})
	if err != nil {
		publisher.logger.Debug(output)
		return errors.Wrapf(err, "failed to push image %v", ref)
	}
	return nil
}

// login passes the token over stdin so it never appears in the command
// line or the runner's debug log.
func (publisher imagePublisher) login(ctx stdcontext.Context, registry string, credentials model.Credentials) error {
	publisher.logger.Info(fmt.Sprintf("authenticate to registry as %v", credentials))
	args := []string{"login", "--username", credentials.Username, "--password-stdin"}
	if registry != "" {
		args = append(args, registry)
	}
	_, err := publisher.runner.Execute(ctx, command.Command{
		Executable: "docker",
		Args:       args,
		Stdin:      strings.NewReader(credentials.Token),
	})
	return errors.Wrap(err, "failed to authenticate to registry")
}

func (publisher imagePublisher) logout(ctx stdcontext.Context, registry string) {
	args := []string{"logout"}
	if registry != "" {
		args = append(args, registry)
	}
	_, err := publisher.runner.Execute(ctx, command.Command{
		Executable: "docker",
		Args:       args,
	})
	if err != nil {
		publisher.logger.Error(err, "failed to log out of registry")
	}
}
