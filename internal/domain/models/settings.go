package models

import (
	"encoding/json"
)

// Settings is the opaque key/value blob the UI persists. Values stay raw JSON
// end to end - the server never interprets them.
type Settings map[string]json.RawMessage
