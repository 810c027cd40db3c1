package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/deserts/internal/model"
)

// ErrUnsupportedFormat is returned for input that is neither JSON nor YAML
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Format is a facility input encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// facilityFile is the wrapped form of an input document
type facilityFile struct {
	Facilities []model.FacilityProfile `json:"facilities" yaml:"facilities"`
}

// DetectFormat picks the encoding from the file extension, falling back to
// the first non-blank byte of data
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses a list of facility profiles. The document is either a list
// of profiles or a mapping with a "facilities" list. Claims inherit the
// identifying context of their facility where they leave it empty.
func Decode(data []byte, format Format) ([]model.FacilityProfile, error) {
	var (
		profiles []model.FacilityProfile
		err      error
	)
	switch format {
	case FormatJSON:
		profiles, err = decodeJSON(data)
	case FormatYAML:
		profiles, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}

	for i := range profiles {
		inheritContext(&profiles[i])
	}
	return profiles, nil
}

func decodeJSON(data []byte) ([]model.FacilityProfile, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []model.FacilityProfile{}, nil
	}

	if trimmed[0] == '[' {
		var profiles []model.FacilityProfile
		if err := json.Unmarshal(trimmed, &profiles); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
		return profiles, nil
	}

	var f facilityFile
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	return f.Facilities, nil
}

func decodeYAML(data []byte) ([]model.FacilityProfile, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return []model.FacilityProfile{}, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var profiles []model.FacilityProfile
		if err := root.Decode(&profiles); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
		return profiles, nil
	case yaml.MappingNode:
		var f facilityFile
		if err := root.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
		return f.Facilities, nil
	default:
		return nil, fmt.Errorf("decode YAML: expected a list or a mapping at line %d: %w", root.Line, ErrUnsupportedFormat)
	}
}

func inheritContext(p *model.FacilityProfile) {
	for i := range p.Capabilities {
		c := &p.Capabilities[i]
		if c.FacilityID == "" {
			c.FacilityID = p.FacilityID
		}
		if c.FacilityName == "" {
			c.FacilityName = p.Name
		}
		if c.Region == "" {
			c.Region = p.Region
		}
		if c.District == "" {
			c.District = p.District
		}
		if c.FacilityType == "" {
			c.FacilityType = p.FacilityType
		}
	}
}

// LoadFile reads facility profiles from a JSON or YAML file
func LoadFile(path string) ([]model.FacilityProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	profiles, err := Decode(data, DetectFormat(path, data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, nil
}

// LoadFiles reads several files concurrently. Profiles are returned in
// argument order; the first failure cancels the rest.
func LoadFiles(ctx context.Context, paths []string, workers int) ([]model.FacilityProfile, error) {
	if workers <= 0 {
		workers = 1
	}
	loaded := make([][]model.FacilityProfile, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			profiles, err := LoadFile(path)
			if err != nil {
				return err
			}
			loaded[i] = profiles
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := []model.FacilityProfile{}
	for _, profiles := range loaded {
		all = append(all, profiles...)
	}
	return all, nil
}
