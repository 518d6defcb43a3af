package main

import (
	stdcontext "context"

	"github.com/hellofleet/ship/pkg/delivery/infrastructure/dependency"
)

func build(ctx stdcontext.Context) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	_, err = dependencyContainer.Pipeline().Build(ctx)
	return err
}
