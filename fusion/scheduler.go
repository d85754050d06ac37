// Copyright © 2021 The electrical authors

package fusion

import (
	"time"

	"github.com/WesP10/electrical/data"
	"github.com/WesP10/electrical/parser"
)

// Link is one frame-oriented serial input.
type Link interface {
	ReadFrame() ([]byte, error)
}

// Sink is where each fused record goes, once per cycle.
type Sink interface {
	Publish(r data.Record) error
}

// Role tables for the two physical links. Positions 2 and up on the
// attitude link are reserved for the acceleration and gyro values its
// firmware does not emit yet.
var (
	AttitudeRoles = parser.RoleMapping{parser.Temperature1, parser.Temperature2}
	RangingRoles  = parser.RoleMapping{parser.LongDistance, parser.Pressure}
)

// Scheduler is the process's only control loop: read both links, pace,
// fold the frames into the snapshot, publish, wait out the interval.
type Scheduler struct {
	Attitude      Link
	Ranging       Link
	AttitudeRoles parser.RoleMapping
	RangingRoles  parser.RoleMapping
	Sink          Sink
	Pace          time.Duration
	Interval      time.Duration
	Snapshot      *Snapshot
}

func NewScheduler(attitude, ranging Link, sink Sink, pace, interval time.Duration) *Scheduler {
	return &Scheduler{
		Attitude:      attitude,
		Ranging:       ranging,
		AttitudeRoles: AttitudeRoles,
		RangingRoles:  RangingRoles,
		Sink:          sink,
		Pace:          pace,
		Interval:      interval,
		Snapshot:      NewSnapshot(),
	}
}

// Cycle runs one acquisition-and-publish pass. The attitude link is always
// read before the ranging link; if the attitude board goes silent the
// ranging board is not read that cycle either. Any read or publish error
// ends the loop.
func (s *Scheduler) Cycle() error {
	attitudeFrame, err := s.Attitude.ReadFrame()
	if err != nil {
		return err
	}
	rangingFrame, err := s.Ranging.ReadFrame()
	if err != nil {
		return err
	}

	// Pacing delay so bursts from the boards don't flood the bus.
	time.Sleep(s.Pace)

	s.Snapshot.Apply(parser.Parse(string(attitudeFrame), s.AttitudeRoles))
	s.Snapshot.Apply(parser.Parse(string(rangingFrame), s.RangingRoles))

	if err := s.Sink.Publish(s.Snapshot.Record(time.Now().UTC())); err != nil {
		return err
	}

	time.Sleep(s.Interval)
	return nil
}

// Run repeats Cycle until the first error. There is no normal exit.
func (s *Scheduler) Run() error {
	for {
		if err := s.Cycle(); err != nil {
			return err
		}
	}
}
