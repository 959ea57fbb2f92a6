package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads a catalog from a YAML or TOML file, chosen by extension.
func Load(path string) (*File, error) {
	if isTOML(path) {
		return loadTOML(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	return &file, nil
}

func loadTOML(path string) (*File, error) {
	var file File
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("parse catalog TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("parse catalog TOML: unknown keys %s", strings.Join(keys, ", "))
	}
	return &file, nil
}

// LoadAndValidate reads a catalog and validates it.
func LoadAndValidate(path string) (*File, error) {
	file, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := file.Validate(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	return file, nil
}

// Save writes a catalog to a YAML or TOML file, chosen by extension.
func Save(path string, file *File) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(file); err != nil {
			return fmt.Errorf("marshal catalog: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(file)
		if err != nil {
			return fmt.Errorf("marshal catalog: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write catalog file: %w", err)
	}

	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Catalog provides indexed access to catalog entries.
type Catalog struct {
	file   *File
	byKey  map[string]*Entry
	byKind map[string][]*Entry
}

// NewCatalog creates an indexed catalog from a file.
func NewCatalog(file *File) *Catalog {
	c := &Catalog{
		file:   file,
		byKey:  make(map[string]*Entry),
		byKind: make(map[string][]*Entry),
	}
	for _, e := range file.Frames {
		c.byKey[e.Key] = e
		c.byKind[e.Kind] = append(c.byKind[e.Kind], e)
	}
	return c
}

// Name returns the catalog name.
func (c *Catalog) Name() string {
	return c.file.Name
}

// Lookup finds an entry by key.
func (c *Catalog) Lookup(key string) (*Entry, bool) {
	e, ok := c.byKey[key]
	return e, ok
}

// ListAll returns all entries in file order.
func (c *Catalog) ListAll() []*Entry {
	return c.file.Frames
}

// ListByKind returns entries of one frame kind.
func (c *Catalog) ListByKind(kind string) []*Entry {
	return c.byKind[kind]
}

// Keys returns every key, sorted.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.byKey))
	for k := range c.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Search finds entries matching query in key or description.
func (c *Catalog) Search(query string) []*Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.file.Frames
	}

	var matches []*Entry
	for _, e := range c.file.Frames {
		if strings.Contains(strings.ToLower(e.Key), query) ||
			strings.Contains(strings.ToLower(e.Description), query) {
			matches = append(matches, e)
		}
	}
	return matches
}
