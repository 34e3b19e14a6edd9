package httputil

import (
	"encoding/json"

	"github.com/ovationhq/ovation/internal/errors"
)

// DecodeMap decodes a filtered request map into a typed struct via a JSON
// round trip. Handlers bind the raw body to a map first so field projection
// can drop disallowed keys before any typed binding happens.
func DecodeMap(src map[string]any, dst any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "invalid request body")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "invalid request body")
	}
	return nil
}
