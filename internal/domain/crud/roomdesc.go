package crud

import (
	"context"

	"hoteldash/internal/core/apperror"
)

// roomLayouts maps each room name to the capacities and service tiers it can
// be offered with. Mirrors the combinations the backend seeds rooms from.
var roomLayouts = map[string]struct {
	capacities map[int]bool
	tiers      map[string]bool
}{
	"Standard":         {map[int]bool{1: true}, map[string]bool{"Basic": true, "Premium": true}},
	"Standard Queen":   {map[int]bool{1: true, 2: true}, map[string]bool{"Basic": true, "Premium": true, "Deluxe": true}},
	"Standard King":    {map[int]bool{2: true}, map[string]bool{"Basic": true, "Premium": true, "Deluxe": true}},
	"Double Queen":     {map[int]bool{4: true}, map[string]bool{"Basic": true, "Premium": true, "Deluxe": true}},
	"Double King":      {map[int]bool{4: true, 6: true}, map[string]bool{"Basic": true, "Premium": true, "Deluxe": true, "Suite": true}},
	"Triple King":      {map[int]bool{6: true}, map[string]bool{"Deluxe": true, "Suite": true}},
	"Executive Family": {map[int]bool{4: true, 6: true, 8: true}, map[string]bool{"Deluxe": true, "Suite": true}},
	"Presidential":     {map[int]bool{4: true, 6: true, 8: true}, map[string]bool{"Suite": true}},
}

// RegisterRoomLayoutRules installs before-hooks that reject room descriptions
// whose type or capacity is not offered for the chosen room name.
func RegisterRoomLayoutRules(hooks *HookRegistry, entity string) {
	check := func(_ context.Context, m *Mutation) error {
		rname, _ := m.Payload["rname"].(string)
		layout, ok := roomLayouts[rname]
		if !ok {
			return nil
		}

		var fieldErrs []map[string]string
		if rtype, ok := m.Payload["rtype"].(string); ok && !layout.tiers[rtype] {
			fieldErrs = append(fieldErrs, map[string]string{
				"field":  "rtype",
				"reason": "is not offered for this room name",
			})
		}
		if capacity, ok := recInt(m.Payload, "capacity"); ok && !layout.capacities[capacity] {
			fieldErrs = append(fieldErrs, map[string]string{
				"field":  "capacity",
				"reason": "is not offered for this room name",
			})
		}
		if len(fieldErrs) > 0 {
			return apperror.NewValidation("One or more fields are invalid").
				WithDetail("fields", fieldErrs)
		}
		return nil
	}

	hooks.On(entity, BeforeCreate, check)
	hooks.On(entity, BeforeUpdate, check)
}

// RegisterStayDateOrder installs before-hooks that reject unavailability
// windows ending before they start. Dates are ISO strings, so lexical
// comparison is date comparison.
func RegisterStayDateOrder(hooks *HookRegistry, entity string) {
	check := func(_ context.Context, m *Mutation) error {
		start, _ := m.Payload["startdate"].(string)
		end, _ := m.Payload["enddate"].(string)
		if start != "" && end != "" && end < start {
			return apperror.NewValidation("One or more fields are invalid").
				WithDetail("fields", []map[string]string{{
					"field":  "enddate",
					"reason": "must not be before the start date",
				}})
		}
		return nil
	}

	hooks.On(entity, BeforeCreate, check)
	hooks.On(entity, BeforeUpdate, check)
}
