package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"
	"github.com/urfave/cli/v2"

	"github.com/hellofleet/ship/pkg/delivery/infrastructure/config/pipelineconfig"
	"github.com/hellofleet/ship/pkg/delivery/infrastructure/dependency"
)

func main() {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()
	ctx = listenOSKillSignalsContext(ctx)
	mainLogger := logger.NewTextLogger()

	app := &cli.App{
		Name: "ship",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "pipeline.yaml",
			},
		},
		Before: func(c *cli.Context) error {
			pipelineConfig, err := pipelineconfig.Load(c.String("config"))
			if err != nil {
				return err
			}
			workDir, err := os.Getwd()
			if err != nil {
				return err
			}
			container := dependency.NewDependencyContainer(mainLogger, pipelineConfig, workDir, os.Getenv("SILENT") != "")
			c.Context = dependency.ContainerToContext(c.Context, container)
			return nil
		},
		Commands: cli.Commands{
			&cli.Command{
				Name: "test",
				Action: func(c *cli.Context) error {
					return test(c.Context)
				},
			},
			&cli.Command{
				Name: "build",
				Action: func(c *cli.Context) error {
					return build(c.Context)
				},
			},
			&cli.Command{
				Name: "publish",
				Action: func(c *cli.Context) error {
					return publish(c.Context)
				},
			},
			&cli.Command{
				Name: "run",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name: "force-branch",
					},
				},
				Action: func(c *cli.Context) error {
					return run(c.Context, c.Bool("force-branch"))
				},
			},
		},
	}
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		mainLogger.FatalError(err, "failed execute command "+strings.Join(os.Args, " "))
	}
}

func listenOSKillSignalsContext(ctx context.Context) context.Context {
	var cancelFunc context.CancelFunc
	ctx, cancelFunc = context.WithCancel(ctx)
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		select {
		case <-ch:
			cancelFunc()
		case <-ctx.Done():
			return
		}
	}()
	return ctx
}
