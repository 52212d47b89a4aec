package report

import (
	"encoding/json"
)

// GenerateJSON produces the structured export for tooling.
func GenerateJSON(export *Export) (string, error) {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
