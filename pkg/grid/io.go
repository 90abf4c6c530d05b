package grid

import (
	"encoding/json"
	"fmt"
	"os"
)

// MarshalResult serializes a LayoutResult to pretty-printed JSON bytes.
func MarshalResult(r LayoutResult) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// UnmarshalResult deserializes JSON bytes into a LayoutResult and checks
// that the embedded config is usable.
func UnmarshalResult(data []byte) (LayoutResult, error) {
	var r LayoutResult
	if err := json.Unmarshal(data, &r); err != nil {
		return LayoutResult{}, fmt.Errorf("unmarshal layout result: %w", err)
	}
	if err := ValidateConfig(r.Config); err != nil {
		return LayoutResult{}, fmt.Errorf("layout result config: %w", err)
	}
	return r, nil
}

// WriteResultFile writes a LayoutResult to a JSON file.
func WriteResultFile(r LayoutResult, path string) error {
	data, err := MarshalResult(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadResultFile reads a LayoutResult from a JSON file.
func ReadResultFile(path string) (LayoutResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LayoutResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalResult(data)
}
