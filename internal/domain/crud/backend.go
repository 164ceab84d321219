// Package crud orchestrates validated create/read/update/delete flows over
// the remote data operations backend. All storage belongs to the backend;
// this package owns validation, reference checks, uniqueness lookups and
// the dependent-record guard that runs before every mutating call.
package crud

import (
	"context"

	"hoteldash/internal/domain"
	"hoteldash/internal/schema"
)

// Backend is the remote collaborator the orchestrator mutates through.
//
// Find lookups return an empty slice when the backend reports no matching
// rows; a typed not-found error is reserved for Get on a concrete id.
type Backend interface {
	List(ctx context.Context, ent schema.EntityDef) ([]domain.Record, error)
	Get(ctx context.Context, ent schema.EntityDef, id int) (domain.Record, error)
	Create(ctx context.Context, ent schema.EntityDef, payload map[string]any) (domain.Record, error)
	Update(ctx context.Context, ent schema.EntityDef, id int, payload map[string]any) (domain.Record, error)
	Delete(ctx context.Context, ent schema.EntityDef, id int) error

	// FindByPath queries GET {ent.PathPrefix}/{lookup}/{value}.
	FindByPath(ctx context.Context, ent schema.EntityDef, lookup string, value int) ([]domain.Record, error)
	// FindByQuery queries GET {ent.PathPrefix}/{lookup}?{field}={value}.
	FindByQuery(ctx context.Context, ent schema.EntityDef, lookup, field, value string) ([]domain.Record, error)
}

// HookEvent represents a mutation lifecycle point.
type HookEvent string

const (
	BeforeCreate HookEvent = "before_create"
	BeforeUpdate HookEvent = "before_update"
	BeforeDelete HookEvent = "before_delete"
)

// Mutation is the unit of work passed through lifecycle hooks. Before-hooks
// may veto the mutation by returning an error or enrich Payload in place
// (e.g. pricing a reservation before it is sent).
type Mutation struct {
	Entity  schema.EntityDef
	ID      *int // nil on create
	Payload map[string]any
}

// Hook is a function that runs at a specific lifecycle point.
type Hook func(ctx context.Context, m *Mutation) error

// HookRegistry stores lifecycle hooks keyed by entity name.
type HookRegistry struct {
	hooks map[string]map[HookEvent][]Hook
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{
		hooks: make(map[string]map[HookEvent][]Hook),
	}
}

// On registers a hook for the entity and event.
func (r *HookRegistry) On(entity string, event HookEvent, hook Hook) {
	if r.hooks[entity] == nil {
		r.hooks[entity] = make(map[HookEvent][]Hook)
	}
	r.hooks[entity][event] = append(r.hooks[entity][event], hook)
}

// Run executes all hooks registered for the entity and event, in
// registration order. The first error stops the chain.
func (r *HookRegistry) Run(ctx context.Context, event HookEvent, m *Mutation) error {
	for _, hook := range r.hooks[m.Entity.Name][event] {
		if err := hook(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
