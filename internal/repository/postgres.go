package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresSubscriberRepository stores the subscriber set in a Postgres table.
type PostgresSubscriberRepository struct {
	db *sql.DB
}

// NewPostgresSubscriberRepository opens the database and creates the
// subscribers table if needed.
func NewPostgresSubscriberRepository(connStr string) (*PostgresSubscriberRepository, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, err
	}
	r := &PostgresSubscriberRepository{db: db}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS subscribers (chat_id BIGINT PRIMARY KEY)`); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *PostgresSubscriberRepository) Add(ctx context.Context, chatID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subscribers (chat_id) VALUES ($1) ON CONFLICT (chat_id) DO NOTHING`, chatID)
	return err
}

func (r *PostgresSubscriberRepository) Remove(ctx context.Context, chatID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM subscribers WHERE chat_id=$1`, chatID)
	return err
}

func (r *PostgresSubscriberRepository) Contains(ctx context.Context, chatID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM subscribers WHERE chat_id=$1)`, chatID).Scan(&exists)
	return exists, err
}

func (r *PostgresSubscriberRepository) Snapshot(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT chat_id FROM subscribers ORDER BY chat_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PostgresSourceRepository stores per-user channel lists in a Postgres table.
type PostgresSourceRepository struct {
	db *sql.DB
}

// NewPostgresSourceRepository opens the database and creates the user_sources
// table if needed.
func NewPostgresSourceRepository(connStr string) (*PostgresSourceRepository, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, err
	}
	r := &PostgresSourceRepository{db: db}
	if _, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS user_sources (
            user_id BIGINT PRIMARY KEY,
            channels JSONB NOT NULL
        )`); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *PostgresSourceRepository) Get(ctx context.Context, userID int64) ([]string, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT channels FROM user_sources WHERE user_id=$1`, userID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, os.ErrNotExist
		}
		return nil, err
	}
	var channels []string
	if err := json.Unmarshal(raw, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *PostgresSourceRepository) Save(ctx context.Context, userID int64, channels []string) error {
	raw, err := json.Marshal(channels)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO user_sources (user_id, channels) VALUES ($1, $2)
        ON CONFLICT (user_id) DO UPDATE SET channels=EXCLUDED.channels`,
		userID, string(raw))
	return err
}
