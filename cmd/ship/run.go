package main

import (
	stdcontext "context"

	"github.com/hellofleet/ship/pkg/delivery/infrastructure/dependency"
)

func run(ctx stdcontext.Context, forceBranch bool) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	_, err = dependencyContainer.Pipeline().Run(ctx, registryCredentials(), forceBranch)
	return err
}
