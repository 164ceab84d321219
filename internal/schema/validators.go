package schema

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// IsIntegerLike reports whether text parses as a base-10 integer >= 0.
// Signs, spaces, decimals and empty input are all rejected.
func IsIntegerLike(text string) bool {
	_, err := strconv.ParseUint(text, 10, 64)
	return err == nil
}

// IsRealLike reports whether text parses as a decimal number. Negative values
// are rejected unless allowNegative is set; the sign policy is a per-field
// configuration choice, not a global default.
func IsRealLike(text string, allowNegative bool) bool {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return false
	}
	return allowNegative || d.Sign() >= 0
}

const dateLayout = "2006-01-02"

// FieldError is a field-attributable validation failure.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Coerce converts raw text input into the field's typed value.
// Reference values coerce like integers; their existence is checked by the
// orchestrator against live backend data, not here.
func Coerce(f FieldDef, raw string) (any, error) {
	switch f.Type {
	case TypeText:
		return raw, nil

	case TypeInteger:
		if !IsIntegerLike(raw) {
			return nil, fmt.Errorf("must be a positive whole number")
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("must be a positive whole number")
		}
		return n, nil

	case TypeReal:
		if !IsRealLike(raw, f.AllowNegative) {
			if f.AllowNegative {
				return nil, fmt.Errorf("must be a numerical value")
			}
			return nil, fmt.Errorf("must be a positive numerical value")
		}
		d, _ := decimal.NewFromString(raw)
		return d.InexactFloat64(), nil

	case TypeBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("must be true or false")
		}
		return b, nil

	case TypeDate:
		if _, err := time.Parse(dateLayout, raw); err != nil {
			return nil, fmt.Errorf("must be a date in YYYY-MM-DD format")
		}
		return raw, nil

	case TypeEnum:
		for _, opt := range f.Options {
			if raw == opt {
				return raw, nil
			}
		}
		return nil, fmt.Errorf("must be one of the allowed values")

	case TypeReference:
		if !IsIntegerLike(raw) {
			return nil, fmt.Errorf("must be a valid %s id", f.ReferenceTo)
		}
		n, _ := strconv.Atoi(raw)
		return n, nil

	default:
		return nil, fmt.Errorf("unknown field type %q", f.Type)
	}
}

// ValidateValues checks a raw field set against the entity definition and
// returns the coerced payload. Missing required fields and per-field type
// failures are reported together; no value is coerced partially.
func ValidateValues(ent EntityDef, values map[string]string) (map[string]any, []string, []FieldError) {
	var missing []string
	var fieldErrs []FieldError
	payload := make(map[string]any, len(values))

	for _, f := range ent.UserFields() {
		raw, ok := values[f.Name]
		if !ok || raw == "" {
			if f.Required {
				missing = append(missing, f.Name)
			}
			continue
		}
		v, err := Coerce(f, raw)
		if err != nil {
			fieldErrs = append(fieldErrs, FieldError{Field: f.Name, Reason: err.Error()})
			continue
		}
		payload[f.Name] = v
	}

	return payload, missing, fieldErrs
}
