package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"

	"github.com/hellofleet/ship/pkg/delivery/application/model"
)

type fakeRevisionProvider struct {
	hash   model.Revision
	branch string
}

func (f fakeRevisionProvider) Hash(context.Context) (model.Revision, error) {
	return f.hash, nil
}

func (f fakeRevisionProvider) BranchName(context.Context) (string, error) {
	return f.branch, nil
}

type fakeSuiteRunner struct {
	calls int
	err   error
}

func (f *fakeSuiteRunner) Run(context.Context) error {
	f.calls++
	return f.err
}

type fakeImageBuilder struct {
	calls int
	ref   model.ImageRef
	err   error
}

func (f *fakeImageBuilder) Build(_ context.Context, ref model.ImageRef) error {
	f.calls++
	f.ref = ref
	return f.err
}

type fakeImagePublisher struct {
	calls       int
	ref         model.ImageRef
	credentials model.Credentials
	err         error
}

func (f *fakeImagePublisher) Publish(_ context.Context, ref model.ImageRef, credentials model.Credentials) error {
	f.calls++
	f.ref = ref
	f.credentials = credentials
	return f.err
}

func testConfig() model.Pipeline {
	return model.Pipeline{
		Branch:   "main",
		Registry: "",
		Image: model.Image{
			Namespace:  "hellofleet",
			Name:       "greeter",
			Dockerfile: "Dockerfile",
			Context:    ".",
			TagBy:      model.TagByRevision,
		},
		Test: model.Command{Executable: "go", Args: []string{"test", "./..."}},
	}
}

type fixture struct {
	revisions *fakeRevisionProvider
	suite     *fakeSuiteRunner
	builder   *fakeImageBuilder
	publisher *fakeImagePublisher
	pipeline  Pipeline
}

func newFixture(config model.Pipeline) fixture {
	revisions := &fakeRevisionProvider{hash: "0123456789abcdef0123", branch: "main"}
	suite := &fakeSuiteRunner{}
	builder := &fakeImageBuilder{}
	publisher := &fakeImagePublisher{}
	pipeline := NewPipelineService(config, logger.NewTextLogger(), revisions, suite, builder, publisher)
	return fixture{
		revisions: revisions,
		suite:     suite,
		builder:   builder,
		publisher: publisher,
		pipeline:  pipeline,
	}
}

func credentials() model.Credentials {
	return model.Credentials{Username: "shipper", Token: "secret"}
}

func TestPublishRunsAllStagesInOrder(t *testing.T) {
	f := newFixture(testConfig())

	run, err := f.pipeline.Publish(context.Background(), credentials())

	require.NoError(t, err)
	require.Len(t, run.Stages, 3)
	for _, stage := range run.Stages {
		assert.Equal(t, model.StatusSucceeded, stage.Status)
	}
	assert.Equal(t, 1, f.suite.calls)
	assert.Equal(t, 1, f.builder.calls)
	assert.Equal(t, 1, f.publisher.calls)
	assert.Equal(t, "hellofleet/greeter:0123456789ab", f.publisher.ref.String())
	assert.Equal(t, credentials(), f.publisher.credentials)
	assert.NotEmpty(t, run.ID)
}

func TestFailedSuiteGatesBuildAndPublish(t *testing.T) {
	f := newFixture(testConfig())
	f.suite.err = errors.New("assertion mismatch")

	run, err := f.pipeline.Publish(context.Background(), credentials())

	require.Error(t, err)
	assert.Equal(t, 0, f.builder.calls)
	assert.Equal(t, 0, f.publisher.calls)

	testStage, ok := run.Stage(model.StageTest)
	require.True(t, ok)
	assert.Equal(t, model.StatusFailed, testStage.Status)
	buildStage, ok := run.Stage(model.StageBuild)
	require.True(t, ok)
	assert.Equal(t, model.StatusSkipped, buildStage.Status)
	publishStage, ok := run.Stage(model.StagePublish)
	require.True(t, ok)
	assert.Equal(t, model.StatusSkipped, publishStage.Status)
}

func TestFailedBuildGatesPublish(t *testing.T) {
	f := newFixture(testConfig())
	f.builder.err = errors.New("docker build failed")

	run, err := f.pipeline.Publish(context.Background(), credentials())

	require.Error(t, err)
	assert.Equal(t, 1, f.suite.calls)
	assert.Equal(t, 0, f.publisher.calls)
	publishStage, ok := run.Stage(model.StagePublish)
	require.True(t, ok)
	assert.Equal(t, model.StatusSkipped, publishStage.Status)
}

func TestPublishRequiresCredentials(t *testing.T) {
	f := newFixture(testConfig())

	_, err := f.pipeline.Publish(context.Background(), model.Credentials{})

	require.Error(t, err)
	assert.Equal(t, 0, f.suite.calls)
	assert.Equal(t, 0, f.publisher.calls)
}

func TestTagIsDeterministicPerRevision(t *testing.T) {
	f := newFixture(testConfig())

	_, err := f.pipeline.Build(context.Background())
	require.NoError(t, err)
	first := f.builder.ref

	_, err = f.pipeline.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, f.builder.ref)
	assert.Equal(t, "0123456789ab", f.builder.ref.Tag)
}

func TestLatestTagPolicy(t *testing.T) {
	config := testConfig()
	config.Image.TagBy = model.TagLatest
	f := newFixture(config)

	_, err := f.pipeline.Build(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "hellofleet/greeter:latest", f.builder.ref.String())
}

func TestRunRejectsOtherBranches(t *testing.T) {
	f := newFixture(testConfig())
	f.revisions.branch = "feature/greeting"

	_, err := f.pipeline.Run(context.Background(), credentials(), false)

	require.Error(t, err)
	assert.Equal(t, 0, f.suite.calls)
	assert.Equal(t, 0, f.publisher.calls)
}

func TestRunForcedBranch(t *testing.T) {
	f := newFixture(testConfig())
	f.revisions.branch = "feature/greeting"

	run, err := f.pipeline.Run(context.Background(), credentials(), true)

	require.NoError(t, err)
	assert.Equal(t, 1, f.publisher.calls)
	assert.Equal(t, "feature/greeting", run.Branch)
}

func TestTestCommandOnly(t *testing.T) {
	f := newFixture(testConfig())

	run, err := f.pipeline.Test(context.Background())

	require.NoError(t, err)
	require.Len(t, run.Stages, 1)
	assert.Equal(t, model.StageTest, run.Stages[0].ID)
	assert.Equal(t, 0, f.builder.calls)
	assert.Equal(t, 0, f.publisher.calls)
}
