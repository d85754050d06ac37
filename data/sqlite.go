package data

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3" // Load SQLite DB driver
)

type sqlite_driver struct {
}

func init() {
	RegisterDBDriver("sqlite3", sqlite_driver{})
}

func (sqlite sqlite_driver) OpenDatabase(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS samples (
		timestamp   integer,
		field       text,
		value       real
	)`)
	if err != nil {
		db.Close()
		return err
	}

	return nil
}

func (sqlite sqlite_driver) Close(db *sql.DB) {
}

func (sqlite sqlite_driver) InsertSample(db *sql.DB, timestamp int64, field string, value float64) error {
	stmt := `INSERT INTO samples (
		timestamp,
		field,
		value
	) VALUES (?, ?, ?)`

	_, err := db.Exec(stmt, timestamp, field, value)
	return err
}

func (sqlite sqlite_driver) QueryLast(db *sql.DB, field string) (float64, error) {
	stmt := `SELECT
		value FROM samples
		WHERE
			field = ?
		ORDER BY timestamp DESC
		LIMIT 1`
	row := db.QueryRow(stmt, field)
	var result float64
	err := row.Scan(&result)

	return result, err
}
