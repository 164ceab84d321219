package dto

// MutateRequest carries raw field values for create and update. Values are
// submitted as strings exactly as typed; coercion happens server-side so
// every failure can be attributed to a field.
type MutateRequest struct {
	Values map[string]string `json:"values" binding:"required"`
}

// ChoicesResponse lists the ids currently selectable for a reference field.
type ChoicesResponse struct {
	Entity string `json:"entity"`
	Field  string `json:"field"`
	IDs    []int  `json:"ids"`
}
