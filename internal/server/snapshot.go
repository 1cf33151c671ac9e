package server

import "encoding/json"

// snapshot flattens a model into the generic map the audit log stores.
// Fields tagged `json:"-"` (password hashes) never appear in the result.
func snapshot(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
