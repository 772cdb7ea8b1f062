package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTaxonomy_Parses(t *testing.T) {
	tax, err := DefaultTaxonomy()
	require.NoError(t, err)
	assert.NotEmpty(t, tax.Groups)
	assert.NotEmpty(t, tax.Hierarchies)
}

func TestLoadTaxonomy_CustomFile(t *testing.T) {
	content := `groups:
  - canonical: terraform
    category: tool
    aliases: [hcl]
hierarchies:
  - parent: iac
    children: [terraform]
`
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	tax, err := LoadTaxonomy(path)
	require.NoError(t, err)

	m, err := NewMatcher(tax)
	require.NoError(t, err)

	mt, ok := m.MatchSkill("HCL", "Terraform")
	assert.True(t, ok)
	assert.Equal(t, types.MatchSynonym, mt)

	mt, ok = m.MatchSkill("hcl", "IaC")
	assert.True(t, ok)
	assert.Equal(t, types.MatchHierarchy, mt)

	assert.Equal(t, "tool", m.Category("hcl"))
}

func TestLoadTaxonomy_Errors(t *testing.T) {
	_, err := LoadTaxonomy(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseTaxonomy([]byte("groups: [{canonical: \"\"}]"))
	assert.Error(t, err)

	_, err = ParseTaxonomy([]byte("groups: {not: a list"))
	assert.Error(t, err)
}

func TestNewMatcher_NilTaxonomyStillMatchesExactly(t *testing.T) {
	m, err := NewMatcher(nil)
	require.NoError(t, err)

	mt, ok := m.MatchSkill("Go", "go")
	assert.True(t, ok)
	assert.Equal(t, types.MatchExact, mt)

	_, ok = m.MatchSkill("golang", "go")
	assert.False(t, ok)
}

func TestVocabulary(t *testing.T) {
	m, err := NewDefaultMatcher()
	require.NoError(t, err)

	vocab := m.Vocabulary()
	require.NotEmpty(t, vocab)
	assert.Equal(t, "javascript", vocab[0].Canonical)
	assert.Equal(t, "language", vocab[0].Category)
	assert.Contains(t, vocab[0].Forms, "js")

	// callers get copies
	vocab[0].Forms[0] = "changed"
	assert.Equal(t, "javascript", m.Vocabulary()[0].Forms[0])

	empty, err := NewMatcher(nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Vocabulary())
}
