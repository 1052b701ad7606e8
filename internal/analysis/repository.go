package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// historyPageSize caps how many records a history listing returns.
const historyPageSize = 100

// Repository persists analysis records.
type Repository interface {
	Create(ctx context.Context, record Record) error
	ListByUser(ctx context.Context, userID string) ([]Record, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed analysis repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an analysis record.
func (r *PostgresRepository) Create(ctx context.Context, record Record) error {
	recordID, err := uuid.Parse(record.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(record.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO analysis_records (id, user_id, label, confidence, image_name, image, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		recordID, userID, record.Label, record.Confidence, record.ImageName, record.Image, record.CreatedAt.UTC())
	return err
}

// ListByUser returns the user's records, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT id, user_id, label, confidence, image_name, created_at
        FROM analysis_records WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`, uid, historyPageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var (
			id      uuid.UUID
			owner   uuid.UUID
			created time.Time
			rec     Record
		)
		if err := rows.Scan(&id, &owner, &rec.Label, &rec.Confidence, &rec.ImageName, &created); err != nil {
			return nil, err
		}
		rec.ID = id.String()
		rec.UserID = owner.String()
		rec.CreatedAt = created.UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}
