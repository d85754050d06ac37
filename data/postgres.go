// Copyright © 2021 The electrical authors

package data

import (
	"database/sql"

	_ "github.com/lib/pq"
)

type postgres_driver struct {
}

func init() {
	RegisterDBDriver("postgres", postgres_driver{})
}

func (postgres postgres_driver) OpenDatabase(db *sql.DB) error {
	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS samples (
		timestamp   bigint,
		field       text,
		value       real
	)`); err != nil {
		db.Close()
		return err
	}

	if _, err := db.Exec(`
	CREATE INDEX IF NOT EXISTS i_samples ON samples (
		timestamp,
		field
	)`); err != nil {
		db.Close()
		return err
	}

	return nil
}

func (postgres postgres_driver) Close(db *sql.DB) {
}

func (postgres postgres_driver) InsertSample(db *sql.DB, timestamp int64, field string, value float64) error {
	stmt := `INSERT INTO samples (
		timestamp,
		field,
		value
	) VALUES ($1, $2, $3)`

	_, err := db.Exec(stmt, timestamp, field, value)
	return err
}

func (postgres postgres_driver) QueryLast(db *sql.DB, field string) (float64, error) {
	stmt := `SELECT
		value FROM samples
		WHERE
			field = $1
		ORDER BY timestamp DESC
		LIMIT 1`
	row := db.QueryRow(stmt, field)
	var result float64
	err := row.Scan(&result)

	return result, err
}
