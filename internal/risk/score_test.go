package risk

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xkilldash9x/exposcan/api/schemas"
)

func breachesOf(labels ...string) []schemas.BreachRecord {
	records := make([]schemas.BreachRecord, len(labels))
	for i, l := range labels {
		records[i] = schemas.BreachRecord{SourceID: l, RawLabel: l}
	}
	return records
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func noProfile() schemas.ProfileSnapshot {
	return schemas.ProfileSnapshot{Found: false}
}

func TestScore_BaselineOnlyPath(t *testing.T) {
	// No breaches, no profile, local part "user" matches the weak vocabulary:
	// 10 baseline + 5 pattern.
	got := Score(nil, noProfile(), "user@example.com")
	assert.Equal(t, 15, got)
}

func TestScore_CleanIdentityOnPublicMail(t *testing.T) {
	// "test123" -> "123" is both a vocabulary hit and a digit run? No:
	// "test" is the vocabulary hit here, so pattern = 5+3 = 8, plus domain 5.
	got := Score(nil, noProfile(), "test123@gmail.com")
	assert.Equal(t, 10+8+5, got)
}

func TestScore_DigitRunOnPublicMail(t *testing.T) {
	// Local part with a digit run but no weak vocabulary word:
	// 10 baseline + 3 pattern + 5 domain.
	got := Score(nil, noProfile(), "jane2024@gmail.com")
	assert.Equal(t, 18, got)
}

func TestScore_BreachFactorSaturates(t *testing.T) {
	labels := make([]string, 10)
	for i := range labels {
		labels[i] = fmt.Sprintf("Site%c leak", 'A'+i)
	}
	// 10 breaches would be 80 points uncapped; the factor caps at 40.
	got := Score(breachesOf(labels...), noProfile(), "jdoe@example.com")
	assert.Equal(t, 10+40, got)
}

func TestScore_PasswordAndPIIBonusesApplyOnce(t *testing.T) {
	breaches := breachesOf(
		"Password dump A",
		"Password dump B",
		"SSN records C",
		"Credit card records D",
	)
	// 4*8=32 count points, +15 password once, +10 pii once = 57 -> capped 40.
	got := Score(breaches, noProfile(), "jdoe@example.com")
	assert.Equal(t, 10+40, got)

	// Below the cap each bonus is visible exactly once.
	got = Score(breachesOf("Password dump"), noProfile(), "jdoe@example.com")
	assert.Equal(t, 10+(8+15), got)
	got = Score(breachesOf("Phone records"), noProfile(), "jdoe@example.com")
	assert.Equal(t, 10+(8+10), got)
}

func TestScore_ProfileFactorCappedAt25(t *testing.T) {
	created := time.Now().AddDate(-6, 0, 0)
	profile := schemas.ProfileSnapshot{
		Found:           true,
		FollowerCount:   1200,
		PublicRepoCount: 100,
		Bio:             strPtr("security person"),
		Location:        strPtr("somewhere"),
		CreatedAt:       timePtr(created),
	}
	// Raw profile points: 5 +10(repos) +10(followers) +2 +2 +3 = 32 -> 25.
	got := Score(nil, profile, "jdoe@example.com")
	assert.Equal(t, 10+25, got)
}

func TestScore_ProfileNotFoundContributesNothing(t *testing.T) {
	got := Score(nil, noProfile(), "jdoe@example.com")
	assert.Equal(t, 10, got)
}

func TestScore_SecondaryExposureRequiresBothChannels(t *testing.T) {
	profile := schemas.ProfileSnapshot{Found: true}
	breaches := breachesOf("SiteA leak")

	breachOnly := Score(breaches, noProfile(), "jdoe@example.com")
	profileOnly := Score(nil, profile, "jdoe@example.com")
	both := Score(breaches, profile, "jdoe@example.com")

	assert.Equal(t, 10+8, breachOnly)
	assert.Equal(t, 10+5, profileOnly)
	// Both channels: 10 + 8 (breach) + 5 (profile) + 10 (secondary).
	assert.Equal(t, 10+8+5+10, both)
}

func TestScore_CompositeScenario(t *testing.T) {
	// Password breach + rich, old profile on a clean local part:
	// breach 8+15=23, profile capped 25, secondary 10, baseline 10 -> 68.
	created := time.Now().AddDate(-6, 0, 0)
	profile := schemas.ProfileSnapshot{
		Found:           true,
		FollowerCount:   1200,
		PublicRepoCount: 25,
		Bio:             strPtr("dev"),
		Location:        strPtr("earth"),
		CreatedAt:       timePtr(created),
	}
	got := Score(breachesOf("Password leak on SiteA"), profile, "jdoe@example.com")
	assert.Equal(t, 68, got)
}

func TestScore_AlwaysWithinBounds(t *testing.T) {
	// Pile every signal on at once; the sum must clamp to 100.
	labels := make([]string, 50)
	for i := range labels {
		labels[i] = "Password SSN credit address phone dump"
	}
	created := time.Now().AddDate(-20, 0, 0)
	profile := schemas.ProfileSnapshot{
		Found:           true,
		FollowerCount:   1_000_000,
		PublicRepoCount: 5_000,
		Bio:             strPtr("x"),
		Location:        strPtr("y"),
		CreatedAt:       timePtr(created),
	}
	got := Score(breachesOf(labels...), profile, "admin123+test@gmail.com")
	assert.Equal(t, 100, got)

	// And the floor: nothing can drive it below the baseline.
	got = Score(nil, noProfile(), "a.very-long.structured@corporate.example")
	assert.GreaterOrEqual(t, got, 10)
	assert.LessOrEqual(t, got, 100)
}

func TestScore_DeterministicForEqualInputs(t *testing.T) {
	breaches := breachesOf("SiteA leak", "Password dump")
	profile := schemas.ProfileSnapshot{Found: true, FollowerCount: 10}

	first := Score(breaches, profile, "jdoe@gmail.com")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Score(breaches, profile, "jdoe@gmail.com"))
	}
}

func TestScore_MalformedEmailStillScores(t *testing.T) {
	// No '@' at all: whole input is treated as the local part, no domain
	// points, no panic.
	got := Score(nil, noProfile(), "not-an-email")
	assert.Equal(t, 10, got)
}

func TestHasPasswordExposure(t *testing.T) {
	assert.True(t, HasPasswordExposure(breachesOf("PASSWORD leak")))
	assert.True(t, HasPasswordExposure(breachesOf("stolen credentials")))
	assert.False(t, HasPasswordExposure(breachesOf("email list")))
	assert.False(t, HasPasswordExposure(nil))
}

func TestHasPIIExposure(t *testing.T) {
	assert.True(t, HasPIIExposure(breachesOf("SSN database")))
	assert.True(t, HasPIIExposure(breachesOf("phone directory")))
	assert.False(t, HasPIIExposure(breachesOf("usernames only")))
}
