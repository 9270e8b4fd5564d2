package entity

import "errors"

var (
	ErrPipelineNotFound  = errors.New("pipeline not found")
	ErrStageNotFound     = errors.New("stage not found")
	ErrDuplicatePipeline = errors.New("pipeline id already exists")
	ErrDuplicateStage    = errors.New("stage id already exists in this pipeline")
	ErrPipelineEmpty     = errors.New("pipeline must have at least one stage")
)

// Stage is a single column/status value within a pipeline.
type Stage struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Pipeline is a named sales funnel composed of ordered stages. Stage ids are
// unique within one pipeline; stage sets differ per pipeline.
type Pipeline struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Icon   string  `json:"icon,omitempty"`
	Stages []Stage `json:"stages"`
}

func (p *Pipeline) HasStage(stageID string) bool {
	for _, s := range p.Stages {
		if s.ID == stageID {
			return true
		}
	}
	return false
}
