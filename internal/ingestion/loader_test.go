package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLoader() *Loader {
	return &Loader{
		now:   func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) },
		newID: func() string { return "generated-id" },
	}
}

func TestLoadProfile(t *testing.T) {
	profile, meta, err := testLoader().LoadProfile(filepath.Join("testdata", "profile.json"))
	require.NoError(t, err)

	assert.Equal(t, "generated-id", profile.ProfileID)
	assert.True(t, meta.AssignedID)
	assert.Equal(t, KindProfile, meta.Kind)
	assert.Equal(t, "Jane Doe", profile.Name)
	require.Len(t, profile.Experiences, 1)
	assert.Equal(t, "Built payment APIs in Go serving 10K rps", profile.Experiences[0].Achievements[0].Text)
	require.NotNil(t, profile.CreatedAt)
}

func TestDecodeProfile_KeepsExistingID(t *testing.T) {
	data := []byte(`{"profile_id":"p-1","name":"A","contact":{"email":"a@example.com"},
		"experiences":[{"company":"C","title":"T","achievements":[]}],"skills":[{"name":"Go"}]}`)

	profile, meta, err := testLoader().DecodeProfile(data, "")
	require.NoError(t, err)
	assert.Equal(t, "p-1", profile.ProfileID)
	assert.False(t, meta.AssignedID)
}

func TestDecodeProfile_SchemaError(t *testing.T) {
	_, _, err := testLoader().DecodeProfile([]byte(`{"name":"A"}`), "")

	var schemaErr *schemas.ValidationError
	assert.True(t, errors.As(err, &schemaErr))
}

func TestDecodeProfile_StructValidationError(t *testing.T) {
	data := []byte(`{"name":"A","contact":{"email":"not-an-email"},
		"experiences":[{"company":"C","title":"T","achievements":[]}],"skills":[{"name":"Go"}]}`)

	_, _, err := testLoader().DecodeProfile(data, "")

	var validationErr *types.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, err.Error(), "email")
}

func TestLoadJob_DerivesTextFromHTML(t *testing.T) {
	job, meta, err := testLoader().LoadJob(filepath.Join("testdata", "job.json"))
	require.NoError(t, err)

	assert.Equal(t, "generated-id", job.JobID)
	assert.Equal(t, KindJob, meta.Kind)
	assert.Contains(t, job.RawText, "## About the role")
	assert.Contains(t, job.RawText, "Build payment services in Go.")
	assert.NotContains(t, job.RawText, "Copyright")
	assert.Equal(t, []string{"Design APIs", "Operate PostgreSQL clusters"}, job.Responsibilities)
}

func TestDecodeJob_CleansRawText(t *testing.T) {
	data := []byte(`{"job_id":"j-1","title":"T","company":"C","raw_text":"Go   needed\r\n\n\n\nNow",
		"requirements":{"required_skills":["Go"]}}`)

	job, _, err := testLoader().DecodeJob(data, "")
	require.NoError(t, err)
	assert.Equal(t, "Go needed\n\nNow", job.RawText)
	assert.Empty(t, job.Responsibilities)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, _, err := NewLoader().LoadJob("/nonexistent/job.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
