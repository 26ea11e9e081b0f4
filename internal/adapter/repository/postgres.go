package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/corpgraph/kindred/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// SaveOfficers upserts the raw officer records of one company. Payloads are
// stored as jsonb so the ingest shape and the scoring shape stay identical.
func (r *PostgresRepository) SaveOfficers(ctx context.Context, companyNumber string, officers []domain.RawOfficer) error {
	batch := &pgx.Batch{}

	query := `
		INSERT INTO officers (company_number, full_name, payload, ingested_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_number, full_name) DO UPDATE
		SET payload = EXCLUDED.payload, ingested_at = EXCLUDED.ingested_at
	`

	now := time.Now()
	for _, officer := range officers {
		payload, err := json.Marshal(officer)
		if err != nil {
			return fmt.Errorf("failed to encode officer %q: %w", officer.FullName, err)
		}
		batch.Queue(query, companyNumber, officer.FullName, payload, now)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	if _, err := br.Exec(); err != nil {
		return fmt.Errorf("failed to execute officer batch: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindOfficersByCompany(ctx context.Context, companyNumber string) ([]domain.RawOfficer, error) {
	query := `
		SELECT payload
		FROM officers
		WHERE company_number = $1
		ORDER BY full_name
	`

	rows, err := r.db.Query(ctx, query, companyNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query officers: %w", err)
	}
	defer rows.Close()

	var officers []domain.RawOfficer
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan officer: %w", err)
		}
		var officer domain.RawOfficer
		if err := json.Unmarshal(payload, &officer); err != nil {
			return nil, fmt.Errorf("failed to decode officer payload: %w", err)
		}
		officers = append(officers, officer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return officers, nil
}

// SaveBatch persists scored pairs. Re-scoring the same pair for the same
// company replaces the previous result.
func (r *PostgresRepository) SaveBatch(ctx context.Context, pairs []domain.ScoredPair) error {
	batch := &pgx.Batch{}

	query := `
		INSERT INTO connections (id, company_number, officer_a, officer_b, total_score, confidence, reasons, scored_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_number, officer_a, officer_b) DO UPDATE
		SET total_score = EXCLUDED.total_score,
		    confidence = EXCLUDED.confidence,
		    reasons = EXCLUDED.reasons,
		    scored_at = EXCLUDED.scored_at
	`

	for _, pair := range pairs {
		batch.Queue(query,
			pair.ID,
			pair.CompanyNumber,
			pair.OfficerA,
			pair.OfficerB,
			pair.TotalScore,
			string(pair.Confidence),
			pair.Reasons,
			pair.ScoredAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	if _, err := br.Exec(); err != nil {
		return fmt.Errorf("failed to execute connection batch: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindSince(ctx context.Context, since time.Time, limit int) ([]domain.ScoredPair, error) {
	query := `
		SELECT id, company_number, officer_a, officer_b, total_score, confidence, reasons, scored_at
		FROM connections
		WHERE scored_at >= $1
		ORDER BY scored_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query connections since %v: %w", since, err)
	}
	defer rows.Close()

	return scanPairs(rows)
}

func (r *PostgresRepository) FindByCompany(ctx context.Context, companyNumber string) ([]domain.ScoredPair, error) {
	query := `
		SELECT id, company_number, officer_a, officer_b, total_score, confidence, reasons, scored_at
		FROM connections
		WHERE company_number = $1
		ORDER BY total_score DESC
	`

	rows, err := r.db.Query(ctx, query, companyNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}
	defer rows.Close()

	return scanPairs(rows)
}

func scanPairs(rows pgx.Rows) ([]domain.ScoredPair, error) {
	var pairs []domain.ScoredPair

	for rows.Next() {
		var pair domain.ScoredPair
		var confidence string
		err := rows.Scan(
			&pair.ID,
			&pair.CompanyNumber,
			&pair.OfficerA,
			&pair.OfficerB,
			&pair.TotalScore,
			&confidence,
			&pair.Reasons,
			&pair.ScoredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		pair.Confidence = domain.Confidence(confidence)
		pairs = append(pairs, pair)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return pairs, nil
}
