package main

import (
	stdcontext "context"

	"github.com/hellofleet/ship/pkg/delivery/infrastructure/dependency"
)

func test(ctx stdcontext.Context) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	_, err = dependencyContainer.Pipeline().Test(ctx)
	return err
}
