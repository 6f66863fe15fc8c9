package repo

import (
	"context"
	"database/sql"
	"time"
)

type DesignMeta struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type DesignRecord struct {
	DesignMeta
	Payload []byte `json:"payload"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
	SaveDesign(ctx context.Context, userID int, name string, payload []byte) (int, error)
	ListDesigns(ctx context.Context, userID int) ([]DesignMeta, error)
	GetDesign(ctx context.Context, userID, designID int) (DesignRecord, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) SaveDesign(ctx context.Context, userID int, name string, payload []byte) (int, error) {
	var id int
	query := "INSERT INTO designs (user_id, name, payload, created_at) VALUES ($1, $2, $3, now()) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, userID, name, payload).Scan(&id)
	return id, err
}

func (r *PostgresRepository) ListDesigns(ctx context.Context, userID int) ([]DesignMeta, error) {
	query := "SELECT id, name, created_at FROM designs WHERE user_id=$1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DesignMeta
	for rows.Next() {
		var m DesignMeta
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetDesign(ctx context.Context, userID, designID int) (DesignRecord, error) {
	var rec DesignRecord
	query := "SELECT id, name, created_at, payload FROM designs WHERE user_id=$1 AND id=$2"
	err := r.db.QueryRowContext(ctx, query, userID, designID).Scan(&rec.ID, &rec.Name, &rec.CreatedAt, &rec.Payload)
	return rec, err
}
