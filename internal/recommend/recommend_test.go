package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/exposcan/api/schemas"
)

func breachesOf(labels ...string) []schemas.BreachRecord {
	records := make([]schemas.BreachRecord, len(labels))
	for i, l := range labels {
		records[i] = schemas.BreachRecord{SourceID: l, RawLabel: l}
	}
	return records
}

func titles(recs []schemas.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title
	}
	return out
}

func TestBuild_EmptyInputsStillRecommend(t *testing.T) {
	recs := Build(nil, schemas.ProfileSnapshot{Found: false}, 15)

	// Even with both providers fully degraded the list is never empty:
	// the empty-breach 2FA entry plus the always-appended guidance.
	require.NotEmpty(t, recs)
	assert.Equal(t, []string{
		"Enable two-factor authentication",
		"Use a password manager",
		"Strengthen email security",
		"Regular security maintenance",
		"Phishing protection",
	}, titles(recs))
}

func TestBuild_PasswordBreachIsCriticalAndFirst(t *testing.T) {
	recs := Build(breachesOf("Password breach detected"), schemas.ProfileSnapshot{}, 50)

	require.NotEmpty(t, recs)
	first := recs[0]
	assert.Equal(t, schemas.LevelCritical, first.Level)
	assert.Equal(t, "Change all passwords immediately", first.Title)
	// Action items are ordered: email recovery path first, then money,
	// social, work.
	require.Len(t, first.ActionItems, 4)
	assert.Contains(t, first.ActionItems[0], "email")
	assert.Contains(t, first.ActionItems[1], "financial")

	// The generic breach entry must not also appear.
	assert.NotContains(t, titles(recs), "Breach detected, monitor account activity")
}

func TestBuild_GenericBreachWithoutPasswordSignal(t *testing.T) {
	recs := Build(breachesOf("SiteA user list"), schemas.ProfileSnapshot{}, 30)

	require.NotEmpty(t, recs)
	assert.Equal(t, "Breach detected, monitor account activity", recs[0].Title)
	assert.Equal(t, schemas.LevelHigh, recs[0].Level)
	assert.NotContains(t, titles(recs), "Change all passwords immediately")
}

func TestBuild_PIIEntryIsIndependentOfPasswordRule(t *testing.T) {
	recs := Build(breachesOf("Password and SSN dump"), schemas.ProfileSnapshot{}, 60)

	got := titles(recs)
	assert.Contains(t, got, "Change all passwords immediately")
	assert.Contains(t, got, "Personal information exposed")
	// Order: password rule fires before the PII rule.
	assert.Equal(t, "Change all passwords immediately", got[0])
	assert.Equal(t, "Personal information exposed", got[1])
}

func TestBuild_PhoneIsNotAPIIRecommendationTrigger(t *testing.T) {
	// "phone" counts toward the risk score but not toward the critical
	// identity-theft entry.
	recs := Build(breachesOf("Phone number list"), schemas.ProfileSnapshot{}, 30)
	assert.NotContains(t, titles(recs), "Personal information exposed")
}

func TestBuild_TwoFactorOnlyWhenNoBreaches(t *testing.T) {
	withBreach := Build(breachesOf("SiteA leak"), schemas.ProfileSnapshot{}, 30)
	assert.NotContains(t, titles(withBreach), "Enable two-factor authentication")

	without := Build(nil, schemas.ProfileSnapshot{}, 15)
	assert.Contains(t, titles(without), "Enable two-factor authentication")
}

func TestBuild_ProfileRules(t *testing.T) {
	profile := schemas.ProfileSnapshot{
		Found:           true,
		PublicRepoCount: 8,
		FollowerCount:   900,
	}
	recs := Build(nil, profile, 25)
	got := titles(recs)

	assert.Contains(t, got, "Audit public repositories for secrets")
	assert.Contains(t, got, "Review profile visibility")

	// Repo audit carries concrete action items.
	for _, r := range recs {
		if r.Title == "Audit public repositories for secrets" {
			assert.Equal(t, schemas.LevelHigh, r.Level)
			assert.NotEmpty(t, r.ActionItems)
		}
	}

	// Not-found profiles trigger neither rule.
	recs = Build(nil, schemas.ProfileSnapshot{Found: false}, 25)
	assert.NotContains(t, titles(recs), "Audit public repositories for secrets")
	assert.NotContains(t, titles(recs), "Review profile visibility")
}

func TestBuild_FollowerThresholdIsExclusive(t *testing.T) {
	atThreshold := Build(nil, schemas.ProfileSnapshot{Found: true, FollowerCount: 500}, 20)
	assert.NotContains(t, titles(atThreshold), "Review profile visibility")

	above := Build(nil, schemas.ProfileSnapshot{Found: true, FollowerCount: 501}, 20)
	assert.Contains(t, titles(above), "Review profile visibility")
}

func TestBuild_MonitorEntryOnlyWithBreaches(t *testing.T) {
	with := Build(breachesOf("SiteA leak"), schemas.ProfileSnapshot{}, 30)
	assert.Contains(t, titles(with), "Monitor for future breaches")

	without := Build(nil, schemas.ProfileSnapshot{}, 15)
	assert.NotContains(t, titles(without), "Monitor for future breaches")
}

func TestBuild_FootprintEntryGatedOnScore(t *testing.T) {
	low := Build(breachesOf("SiteA leak"), schemas.ProfileSnapshot{}, 60)
	assert.NotContains(t, titles(low), "Reduce your digital footprint")

	high := Build(breachesOf("SiteA leak"), schemas.ProfileSnapshot{}, 61)
	assert.Contains(t, titles(high), "Reduce your digital footprint")
}

func TestBuild_FullHouseOrdering(t *testing.T) {
	// Every rule firing at once pins the complete canonical order.
	profile := schemas.ProfileSnapshot{
		Found:           true,
		PublicRepoCount: 40,
		FollowerCount:   5000,
	}
	recs := Build(breachesOf("Password and SSN megadump"), profile, 90)

	assert.Equal(t, []string{
		"Change all passwords immediately",
		"Personal information exposed",
		"Audit public repositories for secrets",
		"Review profile visibility",
		"Use a password manager",
		"Strengthen email security",
		"Monitor for future breaches",
		"Reduce your digital footprint",
		"Regular security maintenance",
		"Phishing protection",
	}, titles(recs))
}

func TestBuild_NoDuplicateTitles(t *testing.T) {
	profile := schemas.ProfileSnapshot{Found: true, PublicRepoCount: 3, FollowerCount: 5000}
	recs := Build(breachesOf("Password dump", "SSN records", "Password dump"), profile, 95)

	seen := map[string]bool{}
	for _, r := range recs {
		assert.False(t, seen[r.Title], "duplicate title %q", r.Title)
		seen[r.Title] = true
	}
}

func TestBuild_LevelsComeFromFixedSet(t *testing.T) {
	recs := Build(breachesOf("Password dump"), schemas.ProfileSnapshot{Found: true, PublicRepoCount: 1}, 70)
	for _, r := range recs {
		assert.Contains(t, []schemas.RecommendationLevel{
			schemas.LevelCritical, schemas.LevelHigh, schemas.LevelMedium, schemas.LevelLow,
		}, r.Level)
	}
}
