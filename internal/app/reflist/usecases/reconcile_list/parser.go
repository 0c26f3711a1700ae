package reconcile_list

import (
	"bytes"
	"encoding/json"

	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/app/reflist/dto"
)

// ParseBatch decodes a submitted diff and trims its names. Missing arrays
// decode as empty; anything that is not a single JSON object is malformed.
func ParseBatch(raw []byte) (*dto.Batch, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, domain.NewValidationError(domain.ErrMalformedBatch, "parse", "empty body")
	}

	var b dto.Batch
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&b); err != nil {
		return nil, domain.NewValidationError(domain.ErrMalformedBatch, "parse", err.Error())
	}
	if dec.More() {
		return nil, domain.NewValidationError(domain.ErrMalformedBatch, "parse", "trailing data after batch")
	}

	b.Normalize()
	return &b, nil
}
