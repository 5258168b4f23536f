// Package prompts loads named prompt-text profiles from YAML files and
// optionally keeps them fresh as the files change on disk.
package prompts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrProfileNotFound is returned when no YAML file exists for a profile.
	ErrProfileNotFound = errors.New("prompt profile not found")

	// ErrInvalidProfile is returned when the YAML root is not a mapping.
	ErrInvalidProfile = errors.New("prompt profile root must be a mapping")

	// ErrMissingPrompt is returned when a required prompt key is absent,
	// not a string, or blank.
	ErrMissingPrompt = errors.New("missing required prompt")
)

// Profile holds the prompt blocks of one profile file, keyed by name.
type Profile map[string]string

// Load reads `<dir>/<profile>.yaml` and returns its string-valued entries.
// Every key in required must be present and non-blank.
func Load(dir, profile string, required []string) (Profile, error) {
	path := filepath.Join(dir, profile+".yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrProfileNotFound)
		}
		return nil, fmt.Errorf("failed to read prompt file %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", path, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidProfile)
	}

	prompts := make(Profile, len(raw))
	for key, value := range raw {
		if s, ok := value.(string); ok {
			prompts[key] = s
		}
	}

	var missing []string
	for _, key := range required {
		if strings.TrimSpace(prompts[key]) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: keys %v: %w", path, missing, ErrMissingPrompt)
	}

	return prompts, nil
}
