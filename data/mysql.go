// Copyright © 2021 The electrical authors

package data

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
)

type mysql_driver struct {
}

func init() {
	RegisterDBDriver("mysql", mysql_driver{})
}

func (mysql mysql_driver) OpenDatabase(db *sql.DB) error {
	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS samples (
		timestamp   bigint,
		field       varchar(128),
		value       double
	)`); err != nil {
		db.Close()
		return err
	}

	row := db.QueryRow(`
	SELECT COUNT(1) IndexIsThere FROM INFORMATION_SCHEMA.STATISTICS WHERE
		table_schema=DATABASE() AND
		table_name='samples' AND
		index_name='i_samples';
	`)
	var result int
	err := row.Scan(&result)
	if err != nil {
		db.Close()
		return err
	}

	if result == 0 {
		if _, err := db.Exec(`
		CREATE INDEX i_samples ON samples (
			timestamp,
			field
		)`); err != nil {
			db.Close()
			return err
		}
	}

	return nil
}

func (mysql mysql_driver) Close(db *sql.DB) {
}

func (mysql mysql_driver) InsertSample(db *sql.DB, timestamp int64, field string, value float64) error {
	stmt := `INSERT INTO samples (
		timestamp,
		field,
		value
	) VALUES (?, ?, ?)`

	_, err := db.Exec(stmt, timestamp, field, value)
	return err
}

func (mysql mysql_driver) QueryLast(db *sql.DB, field string) (float64, error) {
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
