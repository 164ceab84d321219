package crud

import (
	"context"

	"hoteldash/internal/domain"
	"hoteldash/internal/schema"
)

// Guard answers whether a record can be deleted, by probing the by-foreign-key
// lookup of every dependent entity declared in the schema.
type Guard struct {
	registry *schema.Registry
	backend  Backend
}

// NewGuard creates a guard over the given registry and backend.
func NewGuard(registry *schema.Registry, backend Backend) *Guard {
	return &Guard{registry: registry, backend: backend}
}

// Decision is the outcome of a delete check. BlockedBy names the first
// dependent entity, in declaration order, that still references the record.
type Decision struct {
	Allowed   bool
	BlockedBy string
	Records   []domain.Record
}

// CanDelete checks the entity's dependents in declaration order and stops at
// the first one holding a referencing record. An empty lookup result means
// that dependent is clear.
func (g *Guard) CanDelete(ctx context.Context, ent schema.EntityDef, id int) (Decision, error) {
	for _, dep := range ent.Dependents {
		depEnt, ok := g.registry.Get(dep.Entity)
		if !ok {
			continue
		}
		rows, err := g.backend.FindByPath(ctx, depEnt, dep.Lookup, id)
		if err != nil {
			return Decision{}, err
		}
		if len(rows) > 0 {
			return Decision{BlockedBy: depEnt.Label, Records: rows}, nil
		}
	}
	return Decision{Allowed: true}, nil
}
