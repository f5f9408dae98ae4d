package release

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// Decode parses a release definition.
func Decode(data []byte) (*Release, error) {
	r := new(Release)
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}

	return r, nil
}

// Encode renders r as YAML.
func Encode(r *Release) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}

	return data, nil
}
