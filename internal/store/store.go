package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/xkilldash9x/exposcan/api/schemas"
)

// ErrNotFound is returned when no assessment exists for the requested scan ID.
var ErrNotFound = errors.New("assessment not found")

// DBPool abstracts the pgxpool.Pool so the store can be exercised against
// pgxmock in tests.
type DBPool interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS assessments (
		scan_id         TEXT PRIMARY KEY,
		email           TEXT NOT NULL,
		github_username TEXT NOT NULL DEFAULT '',
		breaches        TEXT[] NOT NULL DEFAULT '{}',
		risk_score      INT NOT NULL,
		social          JSONB NOT NULL,
		recommendations JSONB NOT NULL,
		breach_degraded  BOOLEAN NOT NULL DEFAULT FALSE,
		profile_degraded BOOLEAN NOT NULL DEFAULT FALSE,
		scanned_at      TIMESTAMPTZ NOT NULL
	);`

const insertAssessmentSQL = `
	INSERT INTO assessments
		(scan_id, email, github_username, breaches, risk_score, social,
		 recommendations, breach_degraded, profile_degraded, scanned_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

const selectAssessmentSQL = `
	SELECT scan_id, email, github_username, breaches, risk_score, social,
	       recommendations, breach_degraded, profile_degraded, scanned_at
	FROM assessments WHERE scan_id = $1;`

// Store provides the PostgreSQL implementation of schemas.AssessmentStore.
type Store struct {
	pool DBPool
	log  *zap.Logger
}

// New creates a store, verifies the connection, and bootstraps the schema.
func New(ctx context.Context, pool DBPool, logger *zap.Logger) (*Store, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("failed to ensure assessments table: %w", err)
	}

	return &Store{
		pool: pool,
		log:  logger.Named("store"),
	}, nil
}

// SaveAssessment persists one finished assessment. One row per scan;
// assessments are immutable, so there is no upsert path.
func (s *Store) SaveAssessment(ctx context.Context, a *schemas.Assessment) error {
	social, err := json.Marshal(a.Social)
	if err != nil {
		return fmt.Errorf("failed to marshal profile snapshot: %w", err)
	}
	recs, err := json.Marshal(a.Recommendations)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	// Timestamps go in as UTC to avoid zone ambiguity on read-back.
	_, err = s.pool.Exec(ctx, insertAssessmentSQL,
		a.ScanID, a.Email, a.GithubUsername, a.Breaches, a.RiskScore,
		social, recs, a.Degraded.Breach, a.Degraded.Profile, a.ScannedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert assessment: %w", err)
	}

	s.log.Debug("Assessment persisted", zap.String("scanID", a.ScanID))
	return nil
}

// GetAssessment loads a previously stored assessment by scan ID.
func (s *Store) GetAssessment(ctx context.Context, scanID string) (*schemas.Assessment, error) {
	var (
		a          schemas.Assessment
		socialJSON []byte
		recsJSON   []byte
	)

	err := s.pool.QueryRow(ctx, selectAssessmentSQL, scanID).Scan(
		&a.ScanID, &a.Email, &a.GithubUsername, &a.Breaches, &a.RiskScore,
		&socialJSON, &recsJSON, &a.Degraded.Breach, &a.Degraded.Profile, &a.ScannedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load assessment %q: %w", scanID, err)
	}

	if err := json.Unmarshal(socialJSON, &a.Social); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile snapshot: %w", err)
	}
	if err := json.Unmarshal(recsJSON, &a.Recommendations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendations: %w", err)
	}

	return &a, nil
}
