package model

import "time"

type StageID = string

const (
	StageTest    StageID = "test"
	StageBuild   StageID = "build"
	StagePublish StageID = "publish"
)

type StageStatus string

const (
	StatusPending   StageStatus = "pending"
	StatusRunning   StageStatus = "running"
	StatusSucceeded StageStatus = "succeeded"
	StatusFailed    StageStatus = "failed"
	StatusSkipped   StageStatus = "skipped"
)

type StageResult struct {
	ID         StageID
	Status     StageStatus
	StartedAt  time.Time
	FinishedAt time.Time
}

// Run records a single pipeline execution: which revision it was triggered
// for and the outcome of every stage in order. Stages after the first failed
// one stay skipped, never pending.
type Run struct {
	ID       string
	Branch   string
	Revision Revision
	Stages   []StageResult
}

func NewRun(id, branch string, revision Revision, stages []StageID) Run {
	results := make([]StageResult, 0, len(stages))
	for _, stage := range stages {
		results = append(results, StageResult{ID: stage, Status: StatusPending})
	}
	return Run{
		ID:       id,
		Branch:   branch,
		Revision: revision,
		Stages:   results,
	}
}

func (r Run) Stage(id StageID) (StageResult, bool) {
	for _, stage := range r.Stages {
		if stage.ID == id {
			return stage, true
		}
	}
	return StageResult{}, false
}
