package pipelineconfig

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/hellofleet/ship/pkg/delivery/application/model"
)

type Command struct {
	Executable string   `yaml:"executable"`
	Args       []string `yaml:"args"`
}

type Image struct {
	Namespace  string `yaml:"namespace"`
	Name       string `yaml:"name"`
	Dockerfile string `yaml:"dockerfile,omitempty"`
	Context    string `yaml:"context,omitempty"`
	TagBy      string `yaml:"tagBy,omitempty"`
}

type Config struct {
	Branch   string  `yaml:"branch"`
	Registry string  `yaml:"registry,omitempty"`
	Image    Image   `yaml:"image"`
	Test     Command `yaml:"test,omitempty"`
}

func Load(filePath string) (model.Pipeline, error) {
	configBody, err := os.ReadFile(filePath)
	if err != nil {
		return model.Pipeline{}, errors.Wrapf(err, "failed to read config file: %v", filePath)
	}
	var config Config
	err = yaml.Unmarshal(configBody, &config)
	if err != nil {
		return model.Pipeline{}, errors.Wrap(err, "failed to unmarshal config")
	}
	err = assertConfig(config)
	if err != nil {
		return model.Pipeline{}, err
	}
	return mapInfraConfigToAppConfig(config)
}

func assertConfig(config Config) error {
	if config.Branch == "" {
		return fmt.Errorf("trigger branch is not set")
	}
	if config.Image.Namespace == "" {
		return fmt.Errorf("image namespace is not set")
	}
	if config.Image.Name == "" {
		return fmt.Errorf("image name is not set")
	}
	return nil
}

func mapInfraConfigToAppConfig(config Config) (model.Pipeline, error) {
	tagBy := config.Image.TagBy
	if tagBy == "" {
		tagBy = string(model.TagByRevision)
	}
	tagPolicy, err := model.ParseTagPolicy(tagBy)
	if err != nil {
		return model.Pipeline{}, err
	}

	image := model.Image{
		Namespace:  config.Image.Namespace,
		Name:       config.Image.Name,
		Dockerfile: withDefault(config.Image.Dockerfile, "Dockerfile"),
		Context:    withDefault(config.Image.Context, "."),
		TagBy:      tagPolicy,
	}
	test := model.Command{
		Executable: config.Test.Executable,
		Args:       config.Test.Args,
	}
	if test.Executable == "" {
		test = model.Command{
			Executable: "go",
			Args:       []string{"test", "./..."},
		}
	}

	return model.Pipeline{
		Branch:   config.Branch,
		Registry: config.Registry,
		Image:    image,
		Test:     test,
	}, nil
}

func withDefault(v, defaultValue string) string {
	if v == "" {
		return defaultValue
	}
	return v
}
