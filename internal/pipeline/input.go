// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/insight-engine/pkg/types"
)

// LoadInput reads a run input spec from a JSON or YAML file, chosen by
// extension (.json, .yaml, .yml).
func LoadInput(path string) (*types.RunInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input spec: %w", err)
	}

	var input types.RunInput
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("parsing input spec %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("parsing input spec %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported input spec format %q: use .json, .yaml, or .yml", ext)
	}

	if len(input.Documents) == 0 {
		return nil, fmt.Errorf("input spec %s names no documents", path)
	}
	return &input, nil
}
