package crud

import (
	"context"
	"fmt"

	"hoteldash/internal/core/apperror"
	"hoteldash/internal/domain"
	"hoteldash/internal/schema"
	"hoteldash/pkg/logger"
)

// Orchestrator runs the validated mutation pipeline for every entity in the
// registry. The order is fixed: local field validation, reference checks,
// uniqueness lookups, before-hooks, then exactly one mutating call. Any
// failure before the last step means no mutation reaches the backend.
type Orchestrator struct {
	registry *schema.Registry
	backend  Backend
	guard    *Guard
	hooks    *HookRegistry
}

// NewOrchestrator creates an orchestrator over the given registry and backend.
func NewOrchestrator(registry *schema.Registry, backend Backend) *Orchestrator {
	return &Orchestrator{
		registry: registry,
		backend:  backend,
		guard:    NewGuard(registry, backend),
		hooks:    NewHookRegistry(),
	}
}

// Hooks returns the hook registry for external registration.
func (o *Orchestrator) Hooks() *HookRegistry {
	return o.hooks
}

// Guard returns the dependent-record guard.
func (o *Orchestrator) Guard() *Guard {
	return o.guard
}

func (o *Orchestrator) entity(name string) (schema.EntityDef, error) {
	ent, ok := o.registry.Get(name)
	if !ok {
		return schema.EntityDef{}, apperror.NewNotFound("entity", name)
	}
	return ent, nil
}

// List returns all records of the entity.
func (o *Orchestrator) List(ctx context.Context, entityName string) ([]domain.Record, error) {
	ent, err := o.entity(entityName)
	if err != nil {
		return nil, err
	}
	return o.backend.List(ctx, ent)
}

// Get returns one record by id.
func (o *Orchestrator) Get(ctx context.Context, entityName string, id int) (domain.Record, error) {
	ent, err := o.entity(entityName)
	if err != nil {
		return nil, err
	}
	return o.backend.Get(ctx, ent, id)
}

// ChoiceIDs returns the ids currently selectable for the entity. Placeholder
// rows carrying the sentinel id are excluded; they exist only so the backend
// can satisfy foreign keys on seed data.
func (o *Orchestrator) ChoiceIDs(ctx context.Context, entityName string) ([]int, error) {
	ent, err := o.entity(entityName)
	if err != nil {
		return nil, err
	}
	records, err := o.backend.List(ctx, ent)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(records))
	for _, rec := range records {
		id, ok := rec.Int(ent.IDField)
		if !ok || id == domain.SentinelID {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Create validates field values and issues a single create call.
func (o *Orchestrator) Create(ctx context.Context, entityName string, values map[string]string) (domain.Record, error) {
	ent, err := o.entity(entityName)
	if err != nil {
		return nil, err
	}

	payload, err := o.validate(ctx, ent, values)
	if err != nil {
		return nil, err
	}
	if err := o.checkUniques(ctx, ent, payload, nil); err != nil {
		return nil, err
	}

	m := &Mutation{Entity: ent, Payload: payload}
	if err := o.hooks.Run(ctx, BeforeCreate, m); err != nil {
		return nil, err
	}

	rec, err := o.backend.Create(ctx, ent, m.Payload)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "record created", "entity", ent.Name)
	return rec, nil
}

// Update validates field values and issues a single update call. The record
// must already exist; uniqueness matches against the record itself are not
// conflicts.
func (o *Orchestrator) Update(ctx context.Context, entityName string, id int, values map[string]string) (domain.Record, error) {
	ent, err := o.entity(entityName)
	if err != nil {
		return nil, err
	}
	if _, err := o.backend.Get(ctx, ent, id); err != nil {
		return nil, err
	}

	payload, err := o.validate(ctx, ent, values)
	if err != nil {
		return nil, err
	}
	if err := o.checkUniques(ctx, ent, payload, &id); err != nil {
		return nil, err
	}
	payload[ent.IDField] = id

	m := &Mutation{Entity: ent, ID: &id, Payload: payload}
	if err := o.hooks.Run(ctx, BeforeUpdate, m); err != nil {
		return nil, err
	}

	rec, err := o.backend.Update(ctx, ent, id, m.Payload)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "record updated", "entity", ent.Name, "id", id)
	return rec, nil
}

// Delete refuses to remove a record that still has dependents, checking them
// in the declared order so the reported blocker is deterministic.
func (o *Orchestrator) Delete(ctx context.Context, entityName string, id int) error {
	ent, err := o.entity(entityName)
	if err != nil {
		return err
	}
	if _, err := o.backend.Get(ctx, ent, id); err != nil {
		return err
	}

	decision, err := o.guard.CanDelete(ctx, ent, id)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return apperror.NewDeleteBlocked(ent.Label, id, decision.BlockedBy).
			WithDetail("records", decision.Records)
	}

	m := &Mutation{Entity: ent, ID: &id}
	if err := o.hooks.Run(ctx, BeforeDelete, m); err != nil {
		return err
	}

	if err := o.backend.Delete(ctx, ent, id); err != nil {
		return err
	}
	logger.Info(ctx, "record deleted", "entity", ent.Name, "id", id)
	return nil
}

// validate runs local field validation plus reference existence checks.
// Reference checks do call the backend, but only with reads; no failure here
// ever reaches a mutating endpoint.
func (o *Orchestrator) validate(ctx context.Context, ent schema.EntityDef, values map[string]string) (map[string]any, error) {
	payload, missing, fieldErrs := schema.ValidateValues(ent, values)
	if len(missing) > 0 {
		return nil, apperror.NewMissingFields(missing)
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidation("One or more fields are invalid").
			WithDetail("fields", fieldErrs)
	}

	// valid id sets fetched once per referenced entity
	validIDs := make(map[string]map[int]bool)
	for _, f := range ent.UserFields() {
		if f.Type != schema.TypeReference {
			continue
		}
		v, ok := payload[f.Name]
		if !ok {
			continue
		}
		refID, ok := v.(int)
		if !ok {
			continue
		}
		set, ok := validIDs[f.ReferenceTo]
		if !ok {
			ids, err := o.ChoiceIDs(ctx, f.ReferenceTo)
			if err != nil {
				return nil, err
			}
			set = make(map[int]bool, len(ids))
			for _, id := range ids {
				set[id] = true
			}
			validIDs[f.ReferenceTo] = set
		}
		if !set[refID] {
			fieldErrs = append(fieldErrs, schema.FieldError{
				Field:  f.Name,
				Reason: fmt.Sprintf("references a %s that does not exist", f.ReferenceTo),
			})
		}
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidation("One or more fields are invalid").
			WithDetail("fields", fieldErrs)
	}

	return payload, nil
}

// checkUniques runs the entity's uniqueness lookups against live backend
// data. On update, a match belonging to the record being updated is ignored.
func (o *Orchestrator) checkUniques(ctx context.Context, ent schema.EntityDef, payload map[string]any, excludeID *int) error {
	for _, rule := range ent.Uniques {
		v, ok := payload[rule.Field]
		if !ok {
			continue
		}

		var (
			rows []domain.Record
			err  error
		)
		switch rule.Kind {
		case schema.LookupPath:
			n, ok := v.(int)
			if !ok {
				continue
			}
			rows, err = o.backend.FindByPath(ctx, ent, rule.Lookup, n)
		case schema.LookupQuery:
			rows, err = o.backend.FindByQuery(ctx, ent, rule.Lookup, rule.Field, fmt.Sprint(v))
		default:
			continue
		}
		if err != nil {
			return err
		}

		for _, row := range rows {
			if excludeID != nil {
				if id, ok := row.Int(ent.IDField); ok && id == *excludeID {
					continue
				}
			}
			return apperror.NewConflict(rule.Message).WithDetail("field", rule.Field)
		}
	}
	return nil
}
