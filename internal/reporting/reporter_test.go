package reporting

import (
	stdjson "encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/exposcan/api/schemas"
)

func sampleAssessment() *schemas.Assessment {
	return &schemas.Assessment{
		ScanID:    "scan-42",
		Email:     "jdoe@example.com",
		Breaches:  []string{"SiteA leak", "Password dump 2023"},
		RiskScore: 58,
		Social: schemas.ProfileSnapshot{
			Found:           true,
			FollowerCount:   120,
			PublicRepoCount: 9,
		},
		Recommendations: []schemas.Recommendation{
			{
				Title:       "Change all passwords immediately",
				Description: "A breach exposing passwords was found.",
				Level:       schemas.LevelCritical,
				ActionItems: []string{"Start with your email account password"},
			},
			{
				Title: "Use a password manager",
				Level: schemas.LevelMedium,
			},
		},
	}
}

func TestNew_Stdout(t *testing.T) {
	for _, format := range []string{"json", "text"} {
		r, err := New(format, "")
		require.NoError(t, err, "format %s", format)
		assert.NoError(t, r.Close(), "closing a stdout reporter must not close stdout")
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "report.xml")

	_, err := New("xml", outputPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")

	// The half-created file must not be left open; Create still makes it,
	// but the handle is released.
	_, statErr := os.Stat(outputPath)
	assert.NoError(t, statErr)
}

func TestJSONReporter_RoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "report.json")

	r, err := New("json", outputPath)
	require.NoError(t, err)

	a := sampleAssessment()
	require.NoError(t, r.Write(a))
	require.NoError(t, r.Close())

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	var got schemas.Assessment
	require.NoError(t, stdjson.Unmarshal(data, &got))
	assert.Equal(t, a.ScanID, got.ScanID)
	assert.Equal(t, a.RiskScore, got.RiskScore)
	assert.Equal(t, a.Breaches, got.Breaches)
	require.Len(t, got.Recommendations, 2)
	assert.Equal(t, schemas.LevelCritical, got.Recommendations[0].Level)
}

func TestTextReporter_Summary(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "report.txt")

	r, err := New("text", outputPath)
	require.NoError(t, err)
	require.NoError(t, r.Write(sampleAssessment()))
	require.NoError(t, r.Close())

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "jdoe@example.com")
	assert.Contains(t, out, "Risk score: 58/100")
	assert.Contains(t, out, "Found in 2 breach source(s):")
	assert.Contains(t, out, "- Password dump 2023")
	assert.Contains(t, out, "120 followers, 9 public repos")
	assert.Contains(t, out, "[CRITICAL] Change all passwords immediately")
	assert.Contains(t, out, "* Start with your email account password")
	assert.NotContains(t, out, "providers were unavailable")
}

func TestTextReporter_CleanResultAndDegradation(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "report.txt")

	r, err := New("text", outputPath)
	require.NoError(t, err)
	require.NoError(t, r.Write(&schemas.Assessment{
		ScanID:    "scan-7",
		Email:     "clean@example.com",
		Breaches:  []string{},
		RiskScore: 10,
		Degraded:  schemas.DegradedSources{Breach: true},
	}))
	require.NoError(t, r.Close())

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "No breaches detected.")
	assert.Contains(t, out, "No public profile found.")
	assert.Contains(t, out, "providers were unavailable")
}
