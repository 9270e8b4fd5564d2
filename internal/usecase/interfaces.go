package usecase

import (
	"context"

	"github.com/xavierca1/dental-crm/internal/entity"
	"github.com/xavierca1/dental-crm/internal/infra/queue"
)

// StageRegistry is the read surface the card flows need from the
// pipeline/stage registry. The settings use case holds the concrete type.
type StageRegistry interface {
	Pipelines() []entity.Pipeline
	Pipeline(pipelineID string) (entity.Pipeline, error)
	Stages(pipelineID string) ([]entity.Stage, error)
	FirstStage(pipelineID string) (entity.Stage, error)
	HasStage(pipelineID, stageID string) bool
}

type QueueProducerInterface interface {
	PublishCardEvent(ctx context.Context, payload queue.CardEventPayload) error
}

type UserDirectory interface {
	FindByID(id string) (*entity.User, error)
}
