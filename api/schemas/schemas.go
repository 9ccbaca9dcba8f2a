package schemas

import "time"

// RecommendationLevel defines the urgency of a remediation action.
type RecommendationLevel string

const (
	LevelCritical RecommendationLevel = "critical"
	LevelHigh     RecommendationLevel = "high"
	LevelMedium   RecommendationLevel = "medium"
	LevelLow      RecommendationLevel = "low"
)

// BreachRecord is the canonical form of one entry from a breach lookup
// provider. SourceID identifies the breached source; RawLabel preserves the
// provider's original label for keyword matching downstream.
type BreachRecord struct {
	SourceID string `json:"sourceId"`
	RawLabel string `json:"rawLabel"`
}

// ProfileSnapshot is the canonical form of a public developer profile.
// Found=false is the one true "no profile" state; numeric fields are never
// negative.
type ProfileSnapshot struct {
	Found           bool       `json:"found"`
	FollowerCount   int        `json:"followers"`
	PublicRepoCount int        `json:"repos"`
	Bio             *string    `json:"bio,omitempty"`
	Location        *string    `json:"location,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	ProfileURL      *string    `json:"profileUrl,omitempty"`
}

// Recommendation is one remediation action. Output order from the
// recommendation engine is a contract; consumers must not re-sort.
type Recommendation struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Level       RecommendationLevel `json:"level"`
	ActionItems []string            `json:"actionItems,omitempty"`
}

// DegradedSources records which provider calls failed or returned garbage.
// A degraded source never fails the scan; the pipeline runs on what it has.
type DegradedSources struct {
	Breach  bool `json:"breach"`
	Profile bool `json:"profile"`
}

// Assessment is the composite risk assessment for one scan. Immutable once
// produced; one assessment per scan request.
type Assessment struct {
	ScanID          string           `json:"scanId"`
	Email           string           `json:"email"`
	GithubUsername  string           `json:"githubUsername,omitempty"`
	Breaches        []string         `json:"breaches"`
	RiskScore       int              `json:"riskScore"`
	Social          ProfileSnapshot  `json:"social"`
	Recommendations []Recommendation `json:"recommendations"`
	Degraded        DegradedSources  `json:"degraded"`
	ScannedAt       time.Time        `json:"scanTimestamp"`
}

// ProfilePayload is the provider-neutral raw shape a profile provider hands
// to the normalizer. A nil payload means "profile not found".
type ProfilePayload struct {
	Login       string
	Followers   int
	PublicRepos int
	Bio         string
	Location    string
	CreatedAt   *time.Time
	HTMLURL     string
}
