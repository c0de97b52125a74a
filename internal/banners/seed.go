package banners

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

//go:embed seed/mock_banners.json
var defaultSeed []byte

// DefaultSeed returns the built-in mock banners.
func DefaultSeed() ([]Banner, error) {
	return LoadSeed(bytes.NewReader(defaultSeed))
}

// LoadSeed decodes a JSON array of banners.
func LoadSeed(r io.Reader) ([]Banner, error) {
	var out []Banner
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return out, nil
}

// LoadSeedFile reads seed banners from path, or the built-in set when path is
// empty.
func LoadSeedFile(path string) ([]Banner, error) {
	if path == "" {
		return DefaultSeed()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return LoadSeed(f)
}
