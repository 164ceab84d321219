// Package domain provides core business logic types shared by the
// orchestration layer and the backend collaborator client.
package domain

import "strconv"

// Record is one remote row as decoded from the backend's JSON. Identifiers
// and storage are entirely owned by the backend; the client never assigns ids.
type Record map[string]any

// SentinelID marks a placeholder row that must be excluded from any
// user-facing choice list.
const SentinelID = -1

// Int returns the named value as an int. JSON numbers decode as float64, but
// some backend endpoints echo ids back as strings, so both are accepted.
func (r Record) Int(key string) (int, bool) {
	switch v := r[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// String returns the named value as a string.
func (r Record) String(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// Float returns the named value as a float64.
func (r Record) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
