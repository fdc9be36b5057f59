// Package catalog holds the read-only movie catalog supplied at startup and
// the search filter run against it on every keystroke.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Subtitle is one subtitle track of an item.
type Subtitle struct {
	Label    string `yaml:"label" json:"label"`
	Src      string `yaml:"src" json:"src"`
	Language string `yaml:"srclang" json:"srclang"`
	Default  bool   `yaml:"default,omitempty" json:"default,omitempty"`
}

// Item is a catalog entry. Items are never mutated once loaded.
type Item struct {
	ID               string     `yaml:"id" json:"id"`
	Title            string     `yaml:"title" json:"title"`
	Category         string     `yaml:"category" json:"category"`
	Description      string     `yaml:"description" json:"description"`
	Year             int        `yaml:"year" json:"year"`
	Rating           float64    `yaml:"rating" json:"rating"`
	PosterURL        string     `yaml:"poster_url" json:"posterUrl"`
	BackdropURL      string     `yaml:"backdrop_url" json:"backdropUrl"`
	VideoURL         string     `yaml:"video_url" json:"videoUrl"`
	OriginalLanguage string     `yaml:"original_language" json:"originalLanguage"`
	Subtitles        []Subtitle `yaml:"subtitles,omitempty" json:"subtitles,omitempty"`
}

// Catalog is an immutable, ordered collection of items.
type Catalog struct {
	items []Item
	byID  map[string]int
}

var (
	ErrEmptyID     = errors.New("catalog item without id")
	ErrDuplicateID = errors.New("duplicate catalog item id")
)

//go:embed catalog.yaml
var defaultCatalog []byte

type document struct {
	Items []Item `yaml:"items"`
}

// New builds a catalog from items, keeping their order. Ids must be unique
// and non-empty.
func New(items []Item) (*Catalog, error) {
	c := &Catalog{items: slices.Clone(items), byID: make(map[string]int, len(items))}
	for i, it := range c.items {
		if it.ID == "" {
			return nil, fmt.Errorf("item %d: %w", i, ErrEmptyID)
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, it.ID)
		}
		c.byID[it.ID] = i
	}
	return c, nil
}

// Load parses a YAML catalog document. Unknown fields are rejected.
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(doc.Items)
}

// LoadFile reads a catalog from path; an empty path yields the built-in
// catalog.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// Items returns a copy of all items in catalog order.
func (c *Catalog) Items() []Item {
	return slices.Clone(c.items)
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Lookup finds an item by id.
func (c *Catalog) Lookup(id string) (Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}
