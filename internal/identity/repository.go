package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// ErrEmailTaken is returned when registration collides on email.
var ErrEmailTaken = errors.New("email already registered")

// Repository persists users.
//
// Touch is a side-effecting part of request validation: the auth guard bumps
// last_seen while resolving a principal. It must stay idempotent under retry.
// IncrementPoints must be atomic at the store so concurrent increments for
// the same user never lose updates.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	Touch(ctx context.Context, id string) error
	IncrementPoints(ctx context.Context, id string) (int64, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return err
	}
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, user.Email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrEmailTaken
	}
	_, err = r.db.Exec(ctx, `INSERT INTO users (id, name, email, password_hash, points, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, user.Name, user.Email, user.PasswordHash, user.Points, user.CreatedAt.UTC())
	return err
}

// FindByEmail fetches a user by email address.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, email, password_hash, points, last_seen, created_at
        FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// FindByID fetches a user by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return User{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, name, email, password_hash, points, last_seen, created_at
        FROM users WHERE id = $1`, userID)
	return scanUser(row)
}

// Touch records that the user was seen just now.
func (r *PostgresRepository) Touch(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.db.Exec(ctx, `UPDATE users SET last_seen = $1 WHERE id = $2`, time.Now().UTC(), userID)
	return err
}

// IncrementPoints adds one point in a single statement and returns the new total.
func (r *PostgresRepository) IncrementPoints(ctx context.Context, id string) (int64, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return 0, ErrNotFound
	}
	var total int64
	err = r.db.QueryRow(ctx, `UPDATE users SET points = points + 1 WHERE id = $1 RETURNING points`, userID).Scan(&total)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return total, nil
}

func scanUser(row pgx.Row) (User, error) {
	var (
		id       uuid.UUID
		lastSeen *time.Time
		created  time.Time
		user     User
	)
	if err := row.Scan(&id, &user.Name, &user.Email, &user.PasswordHash, &user.Points, &lastSeen, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.ID = id.String()
	if lastSeen != nil {
		user.LastSeen = lastSeen.UTC()
	}
	user.CreatedAt = created.UTC()
	return user, nil
}
