package memo

import (
	"fmt"
	"os"
	"strings"

	"github.com/coolbeans/memodrill/pkg/cube"
	"gopkg.in/yaml.v3"
)

// YAMLConfig is the on-disk form of a lettering system. Keys that are left
// out fall back to the Speffz defaults, so a file can override only the
// color scheme or only one schema.
type YAMLConfig struct {
	Name    string            `yaml:"name,omitempty"`
	Colors  map[string]string `yaml:"colors,omitempty"`
	Letters string            `yaml:"letters,omitempty"`
	Edges   []string          `yaml:"edges,omitempty"`
	Corners []string          `yaml:"corners,omitempty"`
}

// LoadConfigFile reads a YAML scheme file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read scheme file: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML scheme data and merges it over DefaultConfig. The
// returned Config is not validated; pass it to New for that.
func ParseConfig(data []byte) (Config, error) {
	var y YAMLConfig
	if err := yaml.Unmarshal(data, &y); err != nil {
		return Config{}, fmt.Errorf("%w: parsing YAML: %v", ErrConfiguration, err)
	}

	cfg := DefaultConfig()
	if y.Name != "" {
		cfg.Name = y.Name
	}
	if len(y.Colors) > 0 {
		scheme := make(cube.ColorScheme, len(y.Colors))
		for k, v := range y.Colors {
			if len([]rune(k)) != 1 {
				return Config{}, configErrorf("color key %q is not a single face letter", k)
			}
			face, err := cube.ParseFace([]rune(strings.ToUpper(k))[0])
			if err != nil {
				return Config{}, configErrorf("%v", err)
			}
			c, err := cube.ParseColor(v)
			if err != nil {
				return Config{}, configErrorf("face %s: %v", face, err)
			}
			scheme[face] = c
		}
		cfg.Scheme = scheme
	}
	if y.Letters != "" {
		cfg.Letters = y.Letters
	}
	if len(y.Edges) > 0 {
		cfg.Edges = y.Edges
	}
	if len(y.Corners) > 0 {
		cfg.Corners = y.Corners
	}
	return cfg, nil
}

// MarshalConfig encodes cfg as a complete YAML scheme file.
func MarshalConfig(cfg Config) ([]byte, error) {
	y := YAMLConfig{
		Name:    cfg.Name,
		Colors:  make(map[string]string, len(cfg.Scheme)),
		Letters: cfg.Letters,
		Edges:   cfg.Edges,
		Corners: cfg.Corners,
	}
	for face, c := range cfg.Scheme {
		y.Colors[face.String()] = c.String()
	}
	data, err := yaml.Marshal(&y)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scheme: %w", err)
	}
	return data, nil
}

// Config returns the configuration the encoder was built from.
func (e *Encoder) Config() Config {
	letters := make([]rune, 0, Size)
	for _, entry := range e.edges.entries {
		letters = append(letters, rune(entry.Letter))
	}
	return Config{
		Name:    e.name,
		Scheme:  e.Scheme(),
		Letters: string(letters),
		Edges:   e.edges.Positions(),
		Corners: e.corners.Positions(),
	}
}
