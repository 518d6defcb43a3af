package main

import (
	stdcontext "context"
	"os"

	"github.com/hellofleet/ship/pkg/delivery/application/model"
	"github.com/hellofleet/ship/pkg/delivery/infrastructure/dependency"
)

func publish(ctx stdcontext.Context) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	_, err = dependencyContainer.Pipeline().Publish(ctx, registryCredentials())
	return err
}

// registryCredentials is the only place secret material enters the
// process. Everything below main receives it as an explicit parameter.
func registryCredentials() model.Credentials {
	return model.Credentials{
		Username: os.Getenv("REGISTRY_USERNAME"),
		Token:    os.Getenv("REGISTRY_TOKEN"),
	}
}
