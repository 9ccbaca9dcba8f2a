// File: internal/recommend/recommend.go
// The recommendation engine. An explicit ordered rule list is evaluated top
// to bottom, each rule appending zero or one item; the resulting order is
// part of the contract with the presentation layer, which renders the list
// as-is. Titles come from a fixed set with no overlap, so no deduplication
// pass is needed.
package recommend

import (
	"strings"

	"github.com/xkilldash9x/exposcan/api/schemas"
	"github.com/xkilldash9x/exposcan/internal/risk"
)

// piiRecommendationKeywords gate the "personal information exposed" rule.
// Narrower than the scorer's PII set on purpose: a leaked phone number is a
// scoring signal but does not warrant the critical identity-theft guidance.
var piiRecommendationKeywords = []string{"ssn", "credit", "address"}

const highVisibilityFollowers = 500

// Build derives the ordered remediation list from the normalized breach
// records, the profile snapshot, and the composite score. Deterministic;
// never returns an empty list (the always-appended guidance fires even when
// both providers degrade completely).
func Build(breaches []schemas.BreachRecord, profile schemas.ProfileSnapshot, score int) []schemas.Recommendation {
	recs := []schemas.Recommendation{}

	// Rules 1 and 2 are mutually exclusive: a password-specific breach
	// escalates to critical, any other breach gets the generic high entry.
	switch {
	case len(breaches) > 0 && risk.HasPasswordExposure(breaches):
		recs = append(recs, schemas.Recommendation{
			Title:       "Change all passwords immediately",
			Description: "One or more breaches exposed passwords or credentials tied to this email. Assume every reused password is compromised.",
			Level:       schemas.LevelCritical,
			ActionItems: []string{
				"Change your email account password first",
				"Change passwords for banking and financial accounts",
				"Change passwords for social media accounts",
				"Change passwords for work accounts",
			},
		})
	case len(breaches) > 0:
		recs = append(recs, schemas.Recommendation{
			Title:       "Breach detected, monitor account activity",
			Description: "This email appears in known breach data. Watch for unfamiliar logins, password-reset emails you did not request, and new-device alerts.",
			Level:       schemas.LevelHigh,
		})
	}

	// Independent of the password rules; both can appear for the same scan.
	if hasPIIRecommendationSignal(breaches) {
		recs = append(recs, schemas.Recommendation{
			Title:       "Personal information exposed",
			Description: "Breach data references identity details such as SSN, credit, or address records. Consider a credit freeze and identity monitoring.",
			Level:       schemas.LevelCritical,
		})
	}

	// Conditioned on the ABSENCE of breaches. An earlier engine revision
	// recommended 2FA unconditionally; the conditional form supersedes it.
	if len(breaches) == 0 {
		recs = append(recs, schemas.Recommendation{
			Title:       "Enable two-factor authentication",
			Description: "No breaches found for this email. Lock in that position by enabling 2FA on your primary accounts before an exposure happens.",
			Level:       schemas.LevelHigh,
		})
	}

	if profile.Found && profile.PublicRepoCount > 0 {
		recs = append(recs, schemas.Recommendation{
			Title:       "Audit public repositories for secrets",
			Description: "Public repositories are a common source of leaked credentials and internal details.",
			Level:       schemas.LevelHigh,
			ActionItems: []string{
				"Scan repository history for API keys and tokens",
				"Remove hardcoded credentials and rotate any you find",
				"Check commit metadata for private email addresses",
			},
		})
	}

	if profile.Found && profile.FollowerCount > highVisibilityFollowers {
		recs = append(recs, schemas.Recommendation{
			Title:       "Review profile visibility",
			Description: "A high-visibility profile widens the audience for anything exposed in your bio, pinned repositories, or activity feed.",
			Level:       schemas.LevelMedium,
		})
	}

	recs = append(recs,
		schemas.Recommendation{
			Title:       "Use a password manager",
			Description: "Unique generated passwords per site contain the blast radius of any single breach.",
			Level:       schemas.LevelMedium,
		},
		schemas.Recommendation{
			Title:       "Strengthen email security",
			Description: "Your email account is the recovery path for everything else. Use a strong unique password and a hardware or app-based second factor.",
			Level:       schemas.LevelMedium,
		},
	)

	if len(breaches) > 0 {
		recs = append(recs, schemas.Recommendation{
			Title:       "Monitor for future breaches",
			Description: "Subscribe to breach notification services so the next exposure of this email reaches you before it reaches an attacker.",
			Level:       schemas.LevelMedium,
		})
	}

	if score > 60 {
		recs = append(recs, schemas.Recommendation{
			Title:       "Reduce your digital footprint",
			Description: "The composite exposure for this identity is high. Close unused accounts and trim public profile details to shrink the attack surface.",
			Level:       schemas.LevelLow,
		})
	}

	recs = append(recs,
		schemas.Recommendation{
			Title:       "Regular security maintenance",
			Description: "Re-check exposure every few months and after news of major breaches.",
			Level:       schemas.LevelLow,
		},
		schemas.Recommendation{
			Title:       "Phishing protection",
			Description: "Breached emails attract targeted phishing. Be suspicious of urgent messages referencing accounts tied to this address.",
			Level:       schemas.LevelLow,
		},
	)

	return recs
}

func hasPIIRecommendationSignal(breaches []schemas.BreachRecord) bool {
	for _, b := range breaches {
		label := strings.ToLower(b.RawLabel)
		for _, kw := range piiRecommendationKeywords {
			if strings.Contains(label, kw) {
				return true
			}
		}
	}
	return false
}
