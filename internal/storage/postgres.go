package storage

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/lib/pq"

	"sentimentform/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS analyses (
		id         UUID PRIMARY KEY,
		text       TEXT NOT NULL,
		label      TEXT NOT NULL,
		score      DOUBLE PRECISION NOT NULL,
		model      TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS analyses_created_at_idx ON analyses (created_at DESC);
`

type Postgres struct {
	db *sql.DB
}

func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Postgres{db: db}, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) Save(ctx context.Context, a domain.Analysis) error {
	query := `
		INSERT INTO analyses (id, text, label, score, model, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := p.db.ExecContext(ctx, query,
		a.ID,
		a.Text,
		a.Sentiment.Label,
		a.Sentiment.Score,
		a.Model,
		a.CreatedAt,
	)

	return err
}

func (p *Postgres) FindByID(ctx context.Context, id string) (*domain.Analysis, error) {
	query := `
		SELECT id, text, label, score, model, created_at
		FROM analyses WHERE id = $1
	`

	a, err := scanAnalysis(p.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return a, nil
}

func (p *Postgres) FindRecent(ctx context.Context, limit int) ([]domain.Analysis, error) {
	query := `
		SELECT id, text, label, score, model, created_at
		FROM analyses ORDER BY created_at DESC LIMIT $1
	`

	rows, err := p.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []domain.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *a)
	}

	return analyses, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(s scanner) (*domain.Analysis, error) {
	var a domain.Analysis
	if err := s.Scan(
		&a.ID,
		&a.Text,
		&a.Sentiment.Label,
		&a.Sentiment.Score,
		&a.Model,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}
