package layout

import (
	"encoding/json"
	"fmt"
	"os"

	apperr "github.com/matzehuels/gridboard/pkg/errors"
)

// Marshal serializes l as a JSON array. A nil layout encodes as [].
func Marshal(l Layout) ([]byte, error) {
	if l == nil {
		l = Layout{}
	}
	return json.Marshal(l)
}

// Unmarshal decodes a JSON array of placement records. Corrupt JSON and
// records without a valid widget id are INVALID_LAYOUT errors. JSON null decodes to an
// empty layout.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidLayout, err, "decode layout")
	}
	for i, r := range l {
		if err := apperr.ValidateWidgetID(r.ID); err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidLayout, err, "record %d", i)
		}
	}
	if l == nil {
		l = Layout{}
	}
	return l, nil
}

// WriteFile writes l to path as indented JSON.
func WriteFile(l Layout, path string) error {
	if l == nil {
		l = Layout{}
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a layout written by WriteFile.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
