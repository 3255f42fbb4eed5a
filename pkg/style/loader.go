// loader.go — Read preset.json and batch.json with graceful degradation.
package style

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadPreset reads and parses a preset file. A malformed file degrades to
// an empty preset (all defaults) with a warning rather than failing; only
// an unreadable file is an error.
func LoadPreset(path string) (*Preset, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read preset: %w", err)
	}

	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		warning := fmt.Sprintf("malformed preset %s: %v, using all defaults", path, err)
		return &Preset{}, []string{warning}, nil
	}
	return &p, nil, nil
}

// LoadBatch reads and parses a batch file. Unlike presets there is nothing
// useful to degrade to, so malformed JSON is an error.
func LoadBatch(path string) (*BatchSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}

	var b BatchSpec
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse batch %s: %w", path, err)
	}
	return &b, nil
}

// ExampleJSON returns starter preset and batch documents for the init
// command.
func ExampleJSON() (preset, batch string) {
	preset = `{
  "font": "sans",
  "fontSizePx": 70,
  "highlightColor": "#FFD700",
  "gradientStart": 0.5,
  "artistName": "Unknown Artist",
  "position": "bottom"
}
`
	batch = `{
  "items": [
    {
      "image": "photo1.jpg",
      "text": "The only way out is through",
      "highlightedWord": "through"
    },
    {
      "image": "photo2.jpg",
      "text": "Make it count",
      "position": "top",
      "fontSizePx": 90
    }
  ]
}
`
	return preset, batch
}
