// Copyright © 2021 The electrical authors

// Package fusion merges the frames of both sensor links into one composite
// record and drives the publish loop.
package fusion

import (
	"time"

	"github.com/WesP10/electrical/data"
	"github.com/WesP10/electrical/parser"
)

// Snapshot is the fused sensor state. Every field holds the most recently
// received valid value, or its seed value if the boards have not reported
// it yet; a field is never reset once set. There is exactly one Snapshot
// per process and only the scheduler writes to it.
type Snapshot struct {
	AccelerometerX float64
	AccelerometerY float64
	AccelerometerZ float64
	GyroscopeX     float64
	GyroscopeY     float64
	GyroscopeZ     float64
	Temperature1   float64
	Temperature2   float64
	Pressure       float64
	ShortDistance  float64
	LongDistance   float64
}

// NewSnapshot seeds the state so the first published record is well formed
// even before any real frame arrives. The seed values are the ones the
// vehicle has always shipped for the fields its firmware does not emit yet.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		AccelerometerX: 11.3,
		AccelerometerY: 11.3,
		AccelerometerZ: 11.3,
		GyroscopeX:     4.5,
		GyroscopeY:     5.6,
		GyroscopeZ:     7.1,
		ShortDistance:  12,
	}
}

// Apply overwrites exactly the fields named in updates, in order. Fields
// not named keep their previous value.
func (s *Snapshot) Apply(updates []parser.Update) {
	for _, u := range updates {
		switch u.Field {
		case parser.AccelerometerX:
			s.AccelerometerX = u.Value
		case parser.AccelerometerY:
			s.AccelerometerY = u.Value
		case parser.AccelerometerZ:
			s.AccelerometerZ = u.Value
		case parser.GyroscopeX:
			s.GyroscopeX = u.Value
		case parser.GyroscopeY:
			s.GyroscopeY = u.Value
		case parser.GyroscopeZ:
			s.GyroscopeZ = u.Value
		case parser.Temperature1:
			s.Temperature1 = u.Value
		case parser.Temperature2:
			s.Temperature2 = u.Value
		case parser.Pressure:
			s.Pressure = u.Value
		case parser.ShortDistance:
			s.ShortDistance = u.Value
		case parser.LongDistance:
			s.LongDistance = u.Value
		}
	}
}

// Record copies the snapshot into its wire form. The copy keeps a publish
// from ever observing a half-applied frame should mutation and publishing
// stop sharing one goroutine.
func (s *Snapshot) Record(now time.Time) data.Record {
	return data.Record{
		TimeStamp:      now,
		Channel:        data.Channel,
		AccelerometerX: s.AccelerometerX,
		AccelerometerY: s.AccelerometerY,
		AccelerometerZ: s.AccelerometerZ,
		GyroscopeX:     s.GyroscopeX,
		GyroscopeY:     s.GyroscopeY,
		GyroscopeZ:     s.GyroscopeZ,
		Temperature1:   s.Temperature1,
		Temperature2:   s.Temperature2,
		Pressure:       s.Pressure,
		ShortDistance:  s.ShortDistance,
		LongDistance:   s.LongDistance,
	}
}
