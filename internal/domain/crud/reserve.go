package crud

import (
	"context"

	"hoteldash/internal/core/apperror"
)

// Pricer quotes the total cost of reserving an unavailable-room slot for a
// client. The quote doubles as an availability check: ok is false when the
// pair is already taken by another reservation.
type Pricer interface {
	QuoteTotalCost(ctx context.Context, ruid, clid int, excludeReid *int) (float64, bool, error)
}

const reservePairTakenMsg = "There is already a reservation with the selected Client ID and the selected Room Unavailable ID"

// RegisterReservePricing installs before-hooks on the reserve entity that
// price the reservation server-side. The total cost is never accepted from
// the caller; it is stamped into the payload from the backend's quote.
func RegisterReservePricing(hooks *HookRegistry, entity string, pricer Pricer) {
	price := func(ctx context.Context, m *Mutation) error {
		ruid, ok := recInt(m.Payload, "ruid")
		if !ok {
			return apperror.NewValidation("One or more fields are invalid").
				WithDetail("fields", []map[string]string{{"field": "ruid", "reason": "is required"}})
		}
		clid, ok := recInt(m.Payload, "clid")
		if !ok {
			return apperror.NewValidation("One or more fields are invalid").
				WithDetail("fields", []map[string]string{{"field": "clid", "reason": "is required"}})
		}

		total, available, err := pricer.QuoteTotalCost(ctx, ruid, clid, m.ID)
		if err != nil {
			return err
		}
		if !available {
			return apperror.NewConflict(reservePairTakenMsg)
		}
		m.Payload["total_cost"] = total
		return nil
	}

	hooks.On(entity, BeforeCreate, price)
	hooks.On(entity, BeforeUpdate, price)
}

func recInt(payload map[string]any, key string) (int, bool) {
	switch v := payload[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
