package session

import (
	appctx "hoteldash/internal/core/context"
)

// Operation is a CRUD action gated by position.
type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Policy maps employee positions to the entities and operations they may
// touch. Administrators manage everything; supervisors may only mark rooms
// unavailable; regular employees may only take reservations. Reads are open
// to every authenticated user since the backend applies its own per-report
// access checks.
type Policy struct{}

// NewPolicy creates the position policy.
func NewPolicy() *Policy {
	return &Policy{}
}

// CanManage reports whether the position may perform the operation on the
// entity.
func (p *Policy) CanManage(position, entity string, op Operation) bool {
	if op == OpRead {
		return true
	}
	switch position {
	case appctx.PositionAdministrator:
		return true
	case appctx.PositionSupervisor:
		return op == OpCreate && entity == "roomunavailable"
	case appctx.PositionRegular:
		return op == OpCreate && entity == "reserve"
	default:
		return false
	}
}

// CanViewGlobalStats reports whether the position may request system-wide
// statistics. Local per-hotel statistics are open to every authenticated
// user; the backend enforces hotel-level access itself.
func (p *Policy) CanViewGlobalStats(position string) bool {
	return position == appctx.PositionAdministrator
}
