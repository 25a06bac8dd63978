// Package sessionblob encodes the persisted game blobs inside a versioned envelope.
package sessionblob

import (
	"encoding/json"
	"log/slog"

	"github.com/myrjola/checkpoint/internal/errors"
)

// Version is the envelope version written by Encode.
const Version = 1

var ErrUnsupportedVersion = errors.NewSentinel("unsupported blob version")

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Encode wraps v in the current envelope.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshal blob data")
	}
	blob, err := json.Marshal(envelope{Version: Version, Data: data})
	if err != nil {
		return nil, errors.Wrap(err, "marshal blob envelope")
	}
	return blob, nil
}

// Decode unwraps blob into v.
func Decode(blob []byte, v any) error {
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return errors.Wrap(err, "unmarshal blob envelope")
	}
	if env.Version != Version {
		return errors.Wrap(ErrUnsupportedVersion, "decode blob", slog.Int("version", env.Version))
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return errors.Wrap(err, "unmarshal blob data", slog.Int("version", env.Version))
	}
	return nil
}
