package dataset

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry describes one selectable data source.
type Entry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	Kind Kind   `yaml:"kind,omitempty"`

	// Label is the part heading used by grammar notes ("PHẦN", "Bài").
	Label string `yaml:"label,omitempty"`
}

// Catalog is the list of data sources offered on the home screen.
type Catalog struct {
	Entries []Entry `yaml:"datasets"`
}

// DefaultCatalog lists the bundled sources, relative to the data directory.
func DefaultCatalog() Catalog {
	return Catalog{Entries: []Entry{
		{Name: "Từ mới 1-3", Path: "tu-moi-1-3.csv", Kind: KindTabular},
		{Name: "Luyện nói HSK3", Path: "onhsk3.txt", Kind: KindSpeakingLine},
		{Name: "Dịch câu HSK3", Path: "dich.txt", Kind: KindTranslationTriad},
		{Name: "Ngữ pháp HSK1", Path: "nguphaphsk1.txt", Kind: KindGrammar, Label: "PHẦN"},
		{Name: "Ngữ pháp HSK2", Path: "nguphaphsk2.txt", Kind: KindGrammar, Label: "Bài"},
		{Name: "Ngữ pháp HSK3", Path: "nguphaphsk3.txt", Kind: KindGrammar, Label: "BÀI"},
	}}
}

// LoadCatalog reads a YAML catalog from path. Entries without a kind get
// one inferred from their path.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog yaml: %w", err)
	}

	seen := make(map[string]bool, len(c.Entries))
	for i := range c.Entries {
		e := &c.Entries[i]
		if e.Path == "" {
			return Catalog{}, fmt.Errorf("catalog entry %d: path is required", i)
		}
		if e.Name == "" {
			e.Name = e.Path
		}
		if seen[e.Name] {
			return Catalog{}, fmt.Errorf("duplicate catalog entry: %s", e.Name)
		}
		seen[e.Name] = true
		if e.Kind == "" {
			e.Kind = InferKind(e.Path)
		}
		switch e.Kind {
		case KindTabular, KindSpeakingLine, KindTranslationTriad, KindGrammar:
		default:
			return Catalog{}, fmt.Errorf("catalog entry %s: unknown kind %q", e.Name, e.Kind)
		}
	}
	return c, nil
}

// Find returns the entry with the given name.
func (c Catalog) Find(name string) (Entry, bool) {
	for _, e := range c.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// InferKind guesses the dialect of a source from its path or URL.
func InferKind(p string) Kind {
	if u, err := url.Parse(p); err == nil && u.Scheme != "" && u.Host != "" {
		if u.Query().Get("output") == "csv" {
			return KindTabular
		}
		p = u.Path
	}

	base := strings.ToLower(path.Base(p))
	switch {
	case strings.HasSuffix(base, ".csv"), strings.HasSuffix(base, ".xlsx"):
		return KindTabular
	case strings.HasPrefix(base, "nguphap"):
		return KindGrammar
	case strings.Contains(base, "dich") && strings.HasSuffix(base, ".txt"):
		return KindTranslationTriad
	default:
		return KindSpeakingLine
	}
}
