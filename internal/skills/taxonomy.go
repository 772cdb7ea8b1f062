package skills

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultTaxonomyYAML []byte

// SynonymGroup is a canonical skill and the aliases accepted for it
type SynonymGroup struct {
	Canonical string   `yaml:"canonical"`
	Category  string   `yaml:"category"`
	Aliases   []string `yaml:"aliases"`
}

// Hierarchy declares that knowing any child implies knowing the parent
type Hierarchy struct {
	Parent   string   `yaml:"parent"`
	Children []string `yaml:"children"`
}

// Taxonomy is the synonym and hierarchy configuration used by a Matcher
type Taxonomy struct {
	Groups      []SynonymGroup `yaml:"groups"`
	Hierarchies []Hierarchy    `yaml:"hierarchies"`
}

var (
	defaultTaxonomy     *Taxonomy
	defaultTaxonomyErr  error
	defaultTaxonomyOnce sync.Once
)

// DefaultTaxonomy returns the embedded taxonomy. It is parsed once and must
// be treated as read-only.
func DefaultTaxonomy() (*Taxonomy, error) {
	defaultTaxonomyOnce.Do(func() {
		defaultTaxonomy, defaultTaxonomyErr = ParseTaxonomy(defaultTaxonomyYAML)
	})
	return defaultTaxonomy, defaultTaxonomyErr
}

// LoadTaxonomy reads a taxonomy YAML file from disk
func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file %s: %w", path, err)
	}
	return ParseTaxonomy(data)
}

// ParseTaxonomy parses taxonomy YAML content
func ParseTaxonomy(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}
	for i, g := range t.Groups {
		if Normalize(g.Canonical) == "" {
			return nil, fmt.Errorf("taxonomy group %d has an empty canonical name", i)
		}
	}
	for i, h := range t.Hierarchies {
		if Normalize(h.Parent) == "" {
			return nil, fmt.Errorf("taxonomy hierarchy %d has an empty parent", i)
		}
	}
	return &t, nil
}

// index is the lookup form of a Taxonomy, keyed by normalized names
type index struct {
	canonical map[string]string          // normalized alias or canonical -> canonical
	aliases   map[string][]string        // canonical -> every normalized surface form
	parents   map[string][]string        // canonical child -> canonical parents
	category  map[string]string          // canonical -> category
	ancestors map[string]map[string]bool // canonical -> transitive parents
	order     []string                   // canonicals in file order
}

func newIndex(t *Taxonomy) *index {
	idx := &index{
		canonical: make(map[string]string),
		aliases:   make(map[string][]string),
		parents:   make(map[string][]string),
		category:  make(map[string]string),
		ancestors: make(map[string]map[string]bool),
	}
	if t == nil {
		return idx
	}

	for _, g := range t.Groups {
		canon := Normalize(g.Canonical)
		if _, seen := idx.aliases[canon]; !seen {
			idx.order = append(idx.order, canon)
		}
		idx.category[canon] = g.Category
		forms := []string{canon}
		idx.canonical[canon] = canon
		for _, alias := range g.Aliases {
			n := Normalize(alias)
			if n == "" {
				continue
			}
			// first group to claim an alias keeps it
			if _, taken := idx.canonical[n]; !taken {
				idx.canonical[n] = canon
			}
			forms = append(forms, n)
		}
		idx.aliases[canon] = forms
	}

	for _, h := range t.Hierarchies {
		parent := idx.resolve(Normalize(h.Parent))
		for _, c := range h.Children {
			child := idx.resolve(Normalize(c))
			if child == "" || child == parent {
				continue
			}
			idx.parents[child] = append(idx.parents[child], parent)
		}
	}
	for child := range idx.parents {
		idx.ancestors[child] = idx.walkParents(child)
	}
	return idx
}

// resolve returns the canonical form for a normalized name, or the name itself
func (idx *index) resolve(normalized string) string {
	if canon, ok := idx.canonical[normalized]; ok {
		return canon
	}
	return normalized
}

// known reports whether a normalized name belongs to a synonym group
func (idx *index) known(normalized string) bool {
	_, ok := idx.canonical[normalized]
	return ok
}

// isAncestor reports whether parent is reachable from child through hierarchies
func (idx *index) isAncestor(child, parent string) bool {
	return idx.ancestors[child][parent]
}

func (idx *index) walkParents(child string) map[string]bool {
	set := make(map[string]bool)
	stack := append([]string(nil), idx.parents[child]...)
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if set[next] || next == child {
			continue
		}
		set[next] = true
		stack = append(stack, idx.parents[next]...)
	}
	return set
}

// surfaceForms returns every normalized name that stands for the canonical skill
func (idx *index) surfaceForms(canonical string) []string {
	if forms, ok := idx.aliases[canonical]; ok {
		return forms
	}
	return []string{canonical}
}

// Term is one canonical skill with every surface form that stands for it
type Term struct {
	Canonical string
	Category  string
	Forms     []string
}

func (idx *index) terms() []Term {
	out := make([]Term, 0, len(idx.order))
	for _, canon := range idx.order {
		out = append(out, Term{
			Canonical: canon,
			Category:  idx.category[canon],
			Forms:     append([]string(nil), idx.aliases[canon]...),
		})
	}
	return out
}
