package blit

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidManifest is returned for manifests with negative sizes.
var ErrInvalidManifest = errors.New("blit: invalid asset manifest")

// Manifest is the on-disk form of the dimension registry:
//
//	images:
//	  ship.png: {width: 32, height: 16}
//	  bg.png:   {width: 800, height: 600}
type Manifest struct {
	Images Dimensions `yaml:"images"`
}

// LoadManifest reads a YAML manifest and returns its image dimensions,
// ready for Loader.Init.
func LoadManifest(r io.Reader) (Dimensions, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("blit: parse manifest: %w", err)
	}

	for name, size := range m.Images {
		if size.Width < 0 || size.Height < 0 {
			return nil, fmt.Errorf("%w: %s has size %dx%d", ErrInvalidManifest, name, size.Width, size.Height)
		}
	}
	if m.Images == nil {
		m.Images = Dimensions{}
	}
	return m.Images, nil
}

// LoadManifestFile reads a YAML manifest from path.
func LoadManifestFile(path string) (Dimensions, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return LoadManifest(f)
}
