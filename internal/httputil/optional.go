package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString distinguishes an absent JSON field from an explicit null.
// Update payloads need all three states for fields like folder_id: absent
// (leave as-is), null (move to the panel root) and a string value (move into
// that folder). A plain *string collapses the first two.
//
//   - Present=false: field absent, keep the stored value
//   - Present=true, Value=nil: JSON null, clear to NULL
//   - Present=true, Value=&s: set to s (empty string included)
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON only runs when the field appears in the document, which is
// what makes Present reliable.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
