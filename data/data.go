package data

import (
	"database/sql"
	"time"

	"github.com/spf13/viper"
)

// Channel is the fixed bus channel every fused record is published on. The
// recorder subscribes to the same name, so both sides of the bus share this
// constant.
const Channel = "SENSOR_INFO"

// Record is one fused sensor reading as it travels over the bus. Every
// tracked field is always present; fields the serial boards have not
// reported yet carry their seed values.
type Record struct {
	TimeStamp      time.Time `json:"timestamp"`
	Channel        string    `json:"channel"`
	AccelerometerX float64   `json:"accelerometer_x"`
	AccelerometerY float64   `json:"accelerometer_y"`
	AccelerometerZ float64   `json:"accelerometer_z"`
	GyroscopeX     float64   `json:"gyroscope_x"`
	GyroscopeY     float64   `json:"gyroscope_y"`
	GyroscopeZ     float64   `json:"gyroscope_z"`
	Temperature1   float64   `json:"temperature1"`
	Temperature2   float64   `json:"temperature2"`
	Pressure       float64   `json:"pressure"`
	ShortDistance  float64   `json:"short_distance"`
	LongDistance   float64   `json:"long_distance"`
}

// FieldNames lists the tracked fields in wire order.
var FieldNames = []string{
	"accelerometer_x",
	"accelerometer_y",
	"accelerometer_z",
	"gyroscope_x",
	"gyroscope_y",
	"gyroscope_z",
	"temperature1",
	"temperature2",
	"pressure",
	"short_distance",
	"long_distance",
}

// Fields returns the record's tracked values keyed by wire name.
func (r *Record) Fields() map[string]float64 {
	return map[string]float64{
		"accelerometer_x": r.AccelerometerX,
		"accelerometer_y": r.AccelerometerY,
		"accelerometer_z": r.AccelerometerZ,
		"gyroscope_x":     r.GyroscopeX,
		"gyroscope_y":     r.GyroscopeY,
		"gyroscope_z":     r.GyroscopeZ,
		"temperature1":    r.Temperature1,
		"temperature2":    r.Temperature2,
		"pressure":        r.Pressure,
		"short_distance":  r.ShortDistance,
		"long_distance":   r.LongDistance,
	}
}

type Database struct {
	db     *sql.DB
	driver DBdriver
}

var drivers map[string]DBdriver

type DBdriver interface {
	OpenDatabase(db *sql.DB) error
	Close(db *sql.DB)
	InsertSample(db *sql.DB, timestamp int64, field string, value float64) error
	QueryLast(db *sql.DB, field string) (float64, error)
}

func init() {
	drivers = make(map[string]DBdriver)
}

func RegisterDBDriver(name string, driver DBdriver) {
	drivers[name] = driver
}

func DBDrivers() []string {
	names := make([]string, len(drivers))
	i := 0
	for name := range drivers {
		names[i] = name
		i++
	}
	return names
}

func OpenDatabase() (*Database, error) {
	db, err := sql.Open(viper.GetString("dbDriver"), viper.GetString("database"))
	if err != nil {
		return nil, err
	}

	driver := drivers[viper.GetString("dbDriver")]
	if err := driver.OpenDatabase(db); err != nil {
		return nil, err
	}

	return &Database{db, driver}, nil
}

func (database *Database) Close() {
	database.driver.Close(database.db)
	database.db.Close()
}

// InsertRecord stores one row per tracked field, all sharing the record's
// timestamp.
func (database *Database) InsertRecord(r *Record) error {
	timestamp := r.TimeStamp.UTC().Unix()
	for field, value := range r.Fields() {
		if err := database.driver.InsertSample(database.db, timestamp, field, value); err != nil {
			return err
		}
	}
	return nil
}

func (database *Database) QueryLast(field string) (float64, error) {
	return database.driver.QueryLast(database.db, field)
}
