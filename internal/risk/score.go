// File: internal/risk/score.go
// The composite risk scorer. Five independent additive factors plus a
// constant baseline, each factor clamped to >=0 and capped before summing,
// with the final sum clamped to [0,100]. Pure function; callable from any
// number of concurrent requests.
package risk

import (
	"strings"
	"time"

	"github.com/xkilldash9x/exposcan/api/schemas"
)

const (
	// baselinePoints is always present; a scan never scores below it unless
	// clamping kicks in (it cannot, all factors are non-negative).
	baselinePoints = 10

	breachFactorCap    = 40
	patternFactorCap   = 15
	profileFactorCap   = 25
	domainFactorCap    = 10
	secondaryFactorCap = 10

	pointsPerBreach        = 8
	passwordExposureBonus  = 15
	piiExposureBonus       = 10
	accountAgeBonusYears   = 5
	highFollowerThreshold  = 100
	viralFollowerThreshold = 1000
)

// passwordKeywords flag breach labels that indicate credential exposure.
var passwordKeywords = []string{"password", "credential"}

// piiKeywords flag breach labels that indicate leaked personal data.
var piiKeywords = []string{"ssn", "credit", "address", "phone"}

// freeMailDomains is the fixed set of public mail providers that earn the
// domain-reputation bump.
var freeMailDomains = map[string]struct{}{
	"gmail.com":      {},
	"googlemail.com": {},
	"yahoo.com":      {},
	"hotmail.com":    {},
	"outlook.com":    {},
	"live.com":       {},
	"aol.com":        {},
	"icloud.com":     {},
	"mail.com":       {},
	"gmx.com":        {},
	"protonmail.com": {},
	"proton.me":      {},
	"yandex.com":     {},
}

// signals carries the pre-split inputs every factor evaluates against.
type signals struct {
	breaches   []schemas.BreachRecord
	profile    schemas.ProfileSnapshot
	localPart  string
	domainPart string
}

// factor is one scoring rule: evaluate, clamp to >=0, cap, sum. Keeping the
// cap next to the evaluation makes each contribution unit-testable on its
// own instead of burying the limits in inline conditionals.
type factor struct {
	name string
	cap  int
	eval func(in signals) int
}

// factors is the full ordered rule list. Order does not affect the result
// (the fold is a plain sum) but is kept stable for readable test output.
var factors = []factor{
	{name: "breach_exposure", cap: breachFactorCap, eval: breachFactor},
	{name: "email_pattern", cap: patternFactorCap, eval: patternFactor},
	{name: "profile_exposure", cap: profileFactorCap, eval: profileFactor},
	{name: "domain_reputation", cap: domainFactorCap, eval: domainFactor},
	{name: "secondary_exposure", cap: secondaryFactorCap, eval: secondaryFactor},
}

// Score combines normalized breach data, the profile snapshot, and the email
// pattern signal into one bounded composite score. Deterministic given
// identical inputs.
func Score(breaches []schemas.BreachRecord, profile schemas.ProfileSnapshot, email string) int {
	in := signals{breaches: breaches, profile: profile}
	in.localPart, in.domainPart = splitEmail(email)

	total := baselinePoints
	for _, f := range factors {
		total += clamp(f.eval(in), 0, f.cap)
	}
	return clamp(total, 0, 100)
}

// HasPasswordExposure reports whether any breach label mentions credential
// exposure. Shared with the recommendation engine so both stay in agreement
// on what "password breach" means.
func HasPasswordExposure(breaches []schemas.BreachRecord) bool {
	return anyLabelContains(breaches, passwordKeywords)
}

// HasPIIExposure reports whether any breach label mentions a PII category.
func HasPIIExposure(breaches []schemas.BreachRecord) bool {
	return anyLabelContains(breaches, piiKeywords)
}

func breachFactor(in signals) int {
	if len(in.breaches) == 0 {
		return 0
	}
	points := min(breachFactorCap, len(in.breaches)*pointsPerBreach)
	// Each bonus applies at most once no matter how many labels match.
	if HasPasswordExposure(in.breaches) {
		points += passwordExposureBonus
	}
	if HasPIIExposure(in.breaches) {
		points += piiExposureBonus
	}
	return points
}

func patternFactor(in signals) int {
	return AnalyzeLocalPart(in.localPart)
}

func profileFactor(in signals) int {
	p := in.profile
	if !p.Found {
		return 0
	}
	points := 5
	points += min(10, p.PublicRepoCount/5)
	if p.FollowerCount > highFollowerThreshold {
		points += 5
	}
	if p.FollowerCount > viralFollowerThreshold {
		points += 5
	}
	if p.Bio != nil && *p.Bio != "" {
		points += 2
	}
	if p.Location != nil && *p.Location != "" {
		points += 2
	}
	if p.CreatedAt != nil && time.Since(*p.CreatedAt) > accountAgeBonusYears*365*24*time.Hour {
		points += 3
	}
	return points
}

func domainFactor(in signals) int {
	if _, ok := freeMailDomains[in.domainPart]; ok {
		return 5
	}
	return 0
}

// secondaryFactor captures compounding exposure across both channels: the
// email shows up in breaches and the identity has a discoverable profile.
func secondaryFactor(in signals) int {
	if len(in.breaches) > 0 && in.profile.Found {
		return 10
	}
	return 0
}

// splitEmail splits an address at the last '@'. A missing '@' leaves the
// whole input as the local part and an empty domain, which scores no
// domain-reputation points.
func splitEmail(email string) (local, domain string) {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email, ""
	}
	return email[:at], strings.ToLower(email[at+1:])
}

func anyLabelContains(breaches []schemas.BreachRecord, keywords []string) bool {
	for _, b := range breaches {
		label := strings.ToLower(b.RawLabel)
		for _, kw := range keywords {
			if strings.Contains(label, kw) {
				return true
			}
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
