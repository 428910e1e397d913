package storage

import (
	"encoding/json"
	"fmt"
)

// schemaVersion is bumped when the persisted shape of any record changes.
const schemaVersion = 1

type envelope struct {
	V    int             `json:"v"`
	Data json.RawMessage `json:"data"`
}

// EncodeJSON wraps v in a versioned envelope and returns it as a string.
func EncodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	b, err := json.Marshal(envelope{V: schemaVersion, Data: data})
	if err != nil {
		return "", fmt.Errorf("encode envelope: %w", err)
	}
	return string(b), nil
}

// DecodeJSON unwraps a versioned envelope into out. Callers fall back to
// defaults when it fails; stored blobs are never trusted blindly.
func DecodeJSON(s string, out any) error {
	var env envelope
	if err := json.Unmarshal([]byte(s), &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if env.V != schemaVersion {
		return fmt.Errorf("unsupported schema version %d", env.V)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
