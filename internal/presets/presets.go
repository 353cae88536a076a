package presets

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

// Custom selects a free-form pattern instead of a named preset
const Custom = "CUSTOM"

// DefaultCustomPattern is offered when the custom option is picked without a pattern
const DefaultCustomPattern = `LITTERA\s+([A-Z0-9]+)`

// Preset is a named identifier pattern
type Preset struct {
	Name        string `yaml:"name" json:"name"`
	Pattern     string `yaml:"pattern" json:"pattern"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Builtin presets. RE2 has no look-behind, so NUMMER matches a non-letter
// (or start of text) before EJ SKALA instead.
var Builtin = []Preset{
	{Name: "NUMMER", Pattern: `(?:^|[^A-Za-z])EJ SKALA\s+([A-Z0-9-]+)`, Description: "Drawing number following EJ SKALA"},
	{Name: "LITTERA", Pattern: `LITTERA\s+([A-Z0-9]+)`, Description: "LITTERA designation"},
	{Name: "ID", Pattern: `ID\s*([A-Z0-9]+)`, Description: "ID code"},
	{Name: "REFERENS", Pattern: `REFERENS\s*(\d+)`, Description: "Numeric reference"},
}

// Catalog is the menu of presets, keyed case-insensitively by name
type Catalog struct {
	presets map[string]Preset
	order   []string
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// NewCatalog returns a catalog holding the builtin presets
func NewCatalog() *Catalog {
	c := &Catalog{presets: make(map[string]Preset)}
	for _, p := range Builtin {
		c.add(p)
	}
	return c
}

// Load returns the builtin catalog extended by the presets in the YAML file
// at path. Entries with a builtin name replace the builtin pattern. An empty
// path returns the builtins only.
func Load(path string) (*Catalog, error) {
	c := NewCatalog()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse presets file %s: %w", path, err)
	}

	for i, p := range file.Presets {
		if strings.TrimSpace(p.Name) == "" || p.Pattern == "" {
			return nil, fmt.Errorf("preset %d in %s needs both name and pattern", i+1, path)
		}
		if strings.EqualFold(p.Name, Custom) {
			return nil, fmt.Errorf("preset name %s is reserved", Custom)
		}
		c.add(p)
	}
	return c, nil
}

func (c *Catalog) add(p Preset) {
	key := strings.ToUpper(p.Name)
	if _, exists := c.presets[key]; !exists {
		c.order = append(c.order, key)
	}
	c.presets[key] = p
}

// List returns the presets in menu order
func (c *Catalog) List() []Preset {
	out := make([]Preset, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.presets[key])
	}
	return out
}

// Names returns the preset names sorted alphabetically
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.presets))
	for _, p := range c.presets {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Resolve turns a menu choice into the pattern fed to the splitter.
// A non-empty custom pattern always wins; choosing Custom without one
// yields DefaultCustomPattern. No choice at all selects LITTERA.
func (c *Catalog) Resolve(name, custom string) (string, error) {
	if custom != "" {
		return custom, nil
	}
	if name == "" {
		name = "LITTERA"
	}
	if strings.EqualFold(name, Custom) {
		return DefaultCustomPattern, nil
	}
	p, ok := c.presets[strings.ToUpper(name)]
	if !ok {
		return "", fmt.Errorf("unknown preset %q (available: %s, %s)", name, strings.Join(c.Names(), ", "), Custom)
	}
	return p.Pattern, nil
}
