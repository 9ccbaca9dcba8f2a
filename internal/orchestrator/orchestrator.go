// File: internal/orchestrator/orchestrator.go
// Description: Manages the lifecycle of one exposure scan. Providers and the
// store are injected via interfaces, keeping the orchestrator decoupled and
// testable.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/exposcan/api/schemas"
	"github.com/xkilldash9x/exposcan/internal/normalize"
	"github.com/xkilldash9x/exposcan/internal/recommend"
	"github.com/xkilldash9x/exposcan/internal/risk"
)

// ErrEmailRequired is returned when a scan is requested without an email
// address. This is the only input error the orchestrator rejects; everything
// downstream degrades instead of failing.
var ErrEmailRequired = errors.New("email is required")

// Orchestrator runs the scan pipeline: provider lookups, normalization,
// scoring, recommendation, best-effort persistence.
type Orchestrator struct {
	breaches schemas.BreachProvider
	profiles schemas.ProfileProvider
	store    schemas.AssessmentStore
	logger   *zap.Logger
}

// New creates an Orchestrator. The store may be nil, which disables
// persistence; both providers are mandatory.
func New(
	breaches schemas.BreachProvider,
	profiles schemas.ProfileProvider,
	store schemas.AssessmentStore,
	logger *zap.Logger,
) (*Orchestrator, error) {
	if breaches == nil || profiles == nil || logger == nil {
		return nil, fmt.Errorf("cannot initialize orchestrator with nil dependencies")
	}
	return &Orchestrator{
		breaches: breaches,
		profiles: profiles,
		store:    store,
		logger:   logger.Named("orchestrator"),
	}, nil
}

// Scan executes one assessment. The two provider calls run concurrently and
// independently; a failing provider marks the assessment as degraded for that
// source but never aborts the scan. Once normalization begins the rest of the
// pipeline is synchronous, pure, and always completes.
func (o *Orchestrator) Scan(ctx context.Context, email, githubUsername string) (*schemas.Assessment, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailRequired
	}

	scanID := uuid.New().String()
	o.logger.Info("Starting exposure scan",
		zap.String("scanID", scanID),
		zap.String("githubUsername", githubUsername),
	)

	var (
		rawBreaches    any
		profilePayload *schemas.ProfilePayload
		degraded       schemas.DegradedSources
	)

	// The goroutines swallow provider errors into degradation flags, so the
	// group never cancels one lookup because the other failed.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := o.breaches.Lookup(gctx, email)
		if err != nil {
			o.logger.Warn("Breach provider degraded", zap.String("scanID", scanID), zap.Error(err))
			degraded.Breach = true
			return nil
		}
		rawBreaches = raw
		return nil
	})
	if githubUsername != "" {
		g.Go(func() error {
			payload, err := o.profiles.Lookup(gctx, githubUsername)
			if err != nil {
				o.logger.Warn("Profile provider degraded", zap.String("scanID", scanID), zap.Error(err))
				degraded.Profile = true
				return nil
			}
			profilePayload = payload
			return nil
		})
	}
	_ = g.Wait()

	records := normalize.NormalizeBreaches(rawBreaches)
	snapshot := normalize.NormalizeProfile(profilePayload)
	score := risk.Score(records, snapshot, email)
	recommendations := recommend.Build(records, snapshot, score)

	assessment := &schemas.Assessment{
		ScanID:          scanID,
		Email:           email,
		GithubUsername:  githubUsername,
		Breaches:        breachLabels(records),
		RiskScore:       score,
		Social:          snapshot,
		Recommendations: recommendations,
		Degraded:        degraded,
		ScannedAt:       time.Now().UTC(),
	}

	// Persistence is best-effort: the caller gets the finished assessment
	// whether or not the row made it to the database.
	if o.store != nil {
		if err := o.store.SaveAssessment(ctx, assessment); err != nil {
			o.logger.Warn("Failed to persist assessment", zap.String("scanID", scanID), zap.Error(err))
		}
	}

	o.logger.Info("Exposure scan finished",
		zap.String("scanID", scanID),
		zap.Int("riskScore", score),
		zap.Int("breaches", len(records)),
		zap.Bool("profileFound", snapshot.Found),
	)
	return assessment, nil
}

// breachLabels flattens records to the one-label-per-record transport shape.
func breachLabels(records []schemas.BreachRecord) []string {
	labels := make([]string, len(records))
	for i, r := range records {
		labels[i] = r.RawLabel
	}
	return labels
}
