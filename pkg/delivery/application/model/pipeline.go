package model

// Command is an external executable invocation configured for a stage.
type Command struct {
	Executable string
	Args       []string
}

type Image struct {
	Namespace  string
	Name       string
	Dockerfile string
	Context    string
	TagBy      TagPolicy
}

// Pipeline is the delivery configuration for a single repository: the branch
// whose pushes trigger a full run, the registry to publish to, the image to
// produce and the command that runs the verification suite.
type Pipeline struct {
	Branch   string
	Registry string
	Image    Image
	Test     Command
}
