// Package registry holds the pipeline/stage configuration. The board and
// the views treat it as read-mostly; only the settings area writes to it.
package registry

import (
	"sync"

	"github.com/xavierca1/dental-crm/internal/entity"
)

type Registry struct {
	mu        sync.RWMutex
	pipelines []entity.Pipeline // ordered, ids unique
}

func New() *Registry {
	return &Registry{}
}

// NewDefault seeds the five pipelines the sales operation runs on.
func NewDefault() *Registry {
	r := New()
	seed := []entity.Pipeline{
		{ID: "hunting", Name: "Hunting", Icon: "mdi:target", Stages: []entity.Stage{
			{ID: "backlog", Name: "Backlog", Color: "#94a3b8"},
			{ID: "interagindo", Name: "Interagindo", Color: "#60a5fa"},
			{ID: "avancado", Name: "Avançado", Color: "#a78bfa"},
			{ID: "cadastro", Name: "Cadastro", Color: "#fbbf24"},
			{ID: "venda-realizada", Name: "Venda Realizada", Color: "#34d399"},
		}},
		{ID: "carteira", Name: "Carteira", Icon: "mdi:briefcase", Stages: []entity.Stage{
			{ID: "ativo", Name: "Ativo", Color: "#34d399"},
			{ID: "acompanhamento", Name: "Acompanhamento", Color: "#60a5fa"},
			{ID: "renovacao", Name: "Renovação", Color: "#fbbf24"},
		}},
		{ID: "positivacao", Name: "Positivação", Icon: "mdi:account-check", Stages: []entity.Stage{
			{ID: "sem-compra", Name: "Sem Compra", Color: "#94a3b8"},
			{ID: "contato-feito", Name: "Contato Feito", Color: "#60a5fa"},
			{ID: "pedido-novo", Name: "Pedido Novo", Color: "#34d399"},
		}},
		{ID: "resgate", Name: "Resgate de Lead", Icon: "mdi:account-convert", Stages: []entity.Stage{
			{ID: "esfriou", Name: "Esfriou", Color: "#94a3b8"},
			{ID: "reaquecendo", Name: "Reaquecendo", Color: "#fbbf24"},
			{ID: "recuperado", Name: "Recuperado", Color: "#34d399"},
		}},
		{ID: "lixeira", Name: "Lixeira Cliente", Icon: "mdi:delete", Stages: []entity.Stage{
			{ID: "churn", Name: "Churn", Color: "#f87171"},
			{ID: "descartado", Name: "Descartado", Color: "#94a3b8"},
		}},
	}
	for i := range seed {
		// seed data is static and well formed
		_ = r.AddPipeline(seed[i])
	}
	return r
}

// Pipelines returns a deep copy in registration order.
func (r *Registry) Pipelines() []entity.Pipeline {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Pipeline, len(r.pipelines))
	for i, p := range r.pipelines {
		out[i] = copyPipeline(p)
	}
	return out
}

func (r *Registry) Pipeline(pipelineID string) (entity.Pipeline, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(pipelineID)
	if i < 0 {
		return entity.Pipeline{}, entity.ErrPipelineNotFound
	}
	return copyPipeline(r.pipelines[i]), nil
}

// Stages returns the ordered stage list of one pipeline.
func (r *Registry) Stages(pipelineID string) ([]entity.Stage, error) {
	p, err := r.Pipeline(pipelineID)
	if err != nil {
		return nil, err
	}
	return p.Stages, nil
}

// FirstStage is the intake default for new cards.
func (r *Registry) FirstStage(pipelineID string) (entity.Stage, error) {
	p, err := r.Pipeline(pipelineID)
	if err != nil {
		return entity.Stage{}, err
	}
	if len(p.Stages) == 0 {
		return entity.Stage{}, entity.ErrPipelineEmpty
	}
	return p.Stages[0], nil
}

func (r *Registry) HasStage(pipelineID, stageID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(pipelineID)
	if i < 0 {
		return false
	}
	return r.pipelines[i].HasStage(stageID)
}

func (r *Registry) AddPipeline(p entity.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(p.ID) >= 0 {
		return entity.ErrDuplicatePipeline
	}
	if len(p.Stages) == 0 {
		return entity.ErrPipelineEmpty
	}
	seen := make(map[string]bool, len(p.Stages))
	for _, s := range p.Stages {
		if seen[s.ID] {
			return entity.ErrDuplicateStage
		}
		seen[s.ID] = true
	}
	r.pipelines = append(r.pipelines, copyPipeline(p))
	return nil
}

func (r *Registry) AddStage(pipelineID string, s entity.Stage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(pipelineID)
	if i < 0 {
		return entity.ErrPipelineNotFound
	}
	if r.pipelines[i].HasStage(s.ID) {
		return entity.ErrDuplicateStage
	}
	r.pipelines[i].Stages = append(r.pipelines[i].Stages, s)
	return nil
}

// RenameStage changes display name/color, never the id, so existing cards
// keep resolving.
func (r *Registry) RenameStage(pipelineID, stageID, name, color string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(pipelineID)
	if i < 0 {
		return entity.ErrPipelineNotFound
	}
	for j := range r.pipelines[i].Stages {
		if r.pipelines[i].Stages[j].ID == stageID {
			r.pipelines[i].Stages[j].Name = name
			if color != "" {
				r.pipelines[i].Stages[j].Color = color
			}
			return nil
		}
	}
	return entity.ErrStageNotFound
}

// RemoveStage drops a stage definition. The caller (settings use case) must
// verify no card still references it; the registry itself has no card
// knowledge.
func (r *Registry) RemoveStage(pipelineID, stageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(pipelineID)
	if i < 0 {
		return entity.ErrPipelineNotFound
	}
	stages := r.pipelines[i].Stages
	if len(stages) == 1 && stages[0].ID == stageID {
		return entity.ErrPipelineEmpty
	}
	for j, s := range stages {
		if s.ID == stageID {
			r.pipelines[i].Stages = append(stages[:j:j], stages[j+1:]...)
			return nil
		}
	}
	return entity.ErrStageNotFound
}

func (r *Registry) RemovePipeline(pipelineID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(pipelineID)
	if i < 0 {
		return entity.ErrPipelineNotFound
	}
	r.pipelines = append(r.pipelines[:i:i], r.pipelines[i+1:]...)
	return nil
}

// indexOf requires the caller to hold at least a read lock.
func (r *Registry) indexOf(pipelineID string) int {
	for i, p := range r.pipelines {
		if p.ID == pipelineID {
			return i
		}
	}
	return -1
}

func copyPipeline(p entity.Pipeline) entity.Pipeline {
	out := p
	out.Stages = make([]entity.Stage, len(p.Stages))
	copy(out.Stages, p.Stages)
	return out
}
