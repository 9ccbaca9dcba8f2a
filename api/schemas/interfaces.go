package schemas

import "context"

// BreachProvider looks up breach sources for an email address. The returned
// payload is raw and heterogeneous; callers pass it to the normalizer rather
// than assuming a shape. An error means the provider degraded, not that the
// scan failed.
type BreachProvider interface {
	Lookup(ctx context.Context, email string) (any, error)
}

// ProfileProvider looks up a public developer profile by username.
// (nil, nil) means the profile does not exist. A non-nil error means the
// provider degraded.
type ProfileProvider interface {
	Lookup(ctx context.Context, username string) (*ProfilePayload, error)
}

// AssessmentStore persists finished assessments. Store failures must never
// block returning the assessment to the caller.
type AssessmentStore interface {
	SaveAssessment(ctx context.Context, a *Assessment) error
	GetAssessment(ctx context.Context, scanID string) (*Assessment, error)
}
