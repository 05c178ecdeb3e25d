package rules

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

//go:embed brands/*.yaml
var builtin embed.FS

// ErrUnknownBrand is returned for a brand with no catalog.
var ErrUnknownBrand = errors.New("unknown brand")

// BrandInfo is the public summary of a catalog.
type BrandInfo struct {
	Brand string `json:"brand"`
	Name  string `json:"name"`
	Rules int    `json:"rules"`
}

// Registry holds the catalogs available to the server and the CLI. Catalogs
// are immutable once registered; Put replaces a brand atomically.
type Registry struct {
	mu sync.RWMutex
	// base holds the catalogs a directory load starts from.
	base     map[string]*Catalog
	catalogs map[string]*Catalog
}

// NewRegistry returns a registry holding the given compiled catalogs.
func NewRegistry(catalogs ...*Catalog) *Registry {
	r := &Registry{
		base:     make(map[string]*Catalog, len(catalogs)),
		catalogs: make(map[string]*Catalog, len(catalogs)),
	}
	for _, c := range catalogs {
		r.base[c.Brand] = c
		r.catalogs[c.Brand] = c
	}
	return r
}

// LoadBuiltin returns a registry with the catalogs compiled into the binary.
func LoadBuiltin() (*Registry, error) {
	catalogs, err := loadFS(builtin, "brands")
	if err != nil {
		return nil, err
	}
	return NewRegistry(catalogs...), nil
}

// LoadDir parses every *.yaml / *.yml file in dir and replaces the overrides
// with the result: base catalogs plus the directory's, the directory winning
// per brand. An override whose file was deleted falls back to its base
// catalog, or disappears. Nothing changes if any file fails.
func (r *Registry) LoadDir(dir string) error {
	catalogs, err := loadFS(os.DirFS(dir), ".")
	if err != nil {
		return fmt.Errorf("load %s: %w", dir, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make(map[string]*Catalog, len(r.base)+len(catalogs))
	for brand, c := range r.base {
		next[brand] = c
	}
	for _, c := range catalogs {
		next[c.Brand] = c
	}
	r.catalogs = next
	return nil
}

// Put registers or replaces a base catalog.
func (r *Registry) Put(c *Catalog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.base[c.Brand] = c
	r.catalogs[c.Brand] = c
}

// Get returns the catalog for a brand id (case-insensitive).
func (r *Registry) Get(brand string) (*Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.catalogs[strings.ToLower(strings.TrimSpace(brand))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBrand, brand)
	}
	return c, nil
}

// Brands lists registered catalogs sorted by display name.
func (r *Registry) Brands() []BrandInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]BrandInfo, 0, len(r.catalogs))
	for _, c := range r.catalogs {
		out = append(out, BrandInfo{Brand: c.Brand, Name: c.Name, Rules: len(c.Rules)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func loadFS(fsys fs.FS, dir string) ([]*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var catalogs []*Catalog
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := fs.ReadFile(fsys, pathJoin(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		c, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		c.Brand = strings.ToLower(c.Brand)
		catalogs = append(catalogs, c)
	}
	return catalogs, nil
}

// pathJoin joins fs.FS paths, which always use forward slashes.
func pathJoin(dir, name string) string {
	if dir == "." || dir == "" {
		return name
	}
	return dir + "/" + name
}
