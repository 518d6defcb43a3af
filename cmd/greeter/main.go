package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"
	"github.com/urfave/cli/v2"

	"github.com/hellofleet/ship/pkg/greeter"
)

const defaultPort = 8080

func main() {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()
	ctx = listenOSKillSignalsContext(ctx)
	mainLogger := logger.NewTextLogger()

	app := &cli.App{
		Name: "greeter",
		Commands: cli.Commands{
			&cli.Command{
				Name: "run",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "port",
						Value: defaultPort,
					},
				},
				Action: func(c *cli.Context) error {
					port := c.Int("port")
					mainLogger.Info(fmt.Sprintf("listening on :%v", port))
					server := greeter.NewServer(port, greeter.NewHandler(mainLogger))
					return server.ListenAndServe(c.Context)
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
