// Copyright © 2021 The electrical authors

package fusion

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/WesP10/electrical/data"
)

type fakeLink struct {
	frames    []string
	reads     int
	err       error // returned once reads reaches failAfter
	failAfter int
}

func (l *fakeLink) ReadFrame() ([]byte, error) {
	if l.err != nil && l.reads >= l.failAfter {
		return nil, l.err
	}
	frame := l.frames[l.reads%len(l.frames)]
	l.reads++
	return []byte(frame), nil
}

type captureSink struct {
	records []data.Record
	stamps  []time.Time
}

func (s *captureSink) Publish(r data.Record) error {
	s.records = append(s.records, r)
	s.stamps = append(s.stamps, time.Now())
	return nil
}

func TestCycleFusesBothLinks(t *testing.T) {
	attitude := &fakeLink{frames: []string{"21.0 22.0\r\n"}}
	ranging := &fakeLink{frames: []string{"150.0 1013.0\r\n"}}
	sink := &captureSink{}

	sched := NewScheduler(attitude, ranging, sink, 0, 0)
	require.NoError(t, sched.Cycle())

	require.Len(t, sink.records, 1)
	r := sink.records[0]
	require.Equal(t, 21.0, r.Temperature1)
	require.Equal(t, 22.0, r.Temperature2)
	require.Equal(t, 150.0, r.LongDistance)
	require.Equal(t, 1013.0, r.Pressure)

	// Everything else stays at its seed.
	require.Equal(t, 11.3, r.AccelerometerX)
	require.Equal(t, 11.3, r.AccelerometerY)
	require.Equal(t, 11.3, r.AccelerometerZ)
	require.Equal(t, 4.5, r.GyroscopeX)
	require.Equal(t, 5.6, r.GyroscopeY)
	require.Equal(t, 7.1, r.GyroscopeZ)
	require.Equal(t, 12.0, r.ShortDistance)
	require.Equal(t, data.Channel, r.Channel)
}

func TestSilentFieldKeepsLastValue(t *testing.T) {
	attitude := &fakeLink{frames: []string{"21.0 22.0\r\n", "23.5\r\n"}}
	ranging := &fakeLink{frames: []string{"150.0 1013.0\r\n", "\r\n"}}
	sink := &captureSink{}

	sched := NewScheduler(attitude, ranging, sink, 0, 0)
	require.NoError(t, sched.Cycle())
	require.NoError(t, sched.Cycle())

	second := sink.records[1]
	require.Equal(t, 23.5, second.Temperature1)
	// Fields missing from the second frames keep their previous values.
	require.Equal(t, 22.0, second.Temperature2)
	require.Equal(t, 150.0, second.LongDistance)
	require.Equal(t, 1013.0, second.Pressure)
}

func TestReadOrderAttitudeFirst(t *testing.T) {
	attitude := &fakeLink{err: errors.New("attitude board unplugged")}
	ranging := &fakeLink{frames: []string{"150.0 1013.0\r\n"}}
	sink := &captureSink{}

	sched := NewScheduler(attitude, ranging, sink, 0, 0)
	require.Error(t, sched.Cycle())
	require.Zero(t, ranging.reads, "ranging link must not be read after an attitude failure")
	require.Empty(t, sink.records)
}

func TestRunStopsOnReadError(t *testing.T) {
	attitude := &fakeLink{frames: []string{"21.0 22.0\r\n"}}
	ranging := &fakeLink{frames: []string{"150.0 1013.0\r\n"}}
	sink := &captureSink{}

	boom := errors.New("read failed")
	attitude.err = boom
	attitude.failAfter = 3

	sched := NewScheduler(attitude, ranging, sink, 0, 0)
	err := sched.Run()
	require.ErrorIs(t, err, boom)
	require.Len(t, sink.records, 3)
}

func TestPublishCadence(t *testing.T) {
	attitude := &fakeLink{frames: []string{"21.0 22.0\r\n"}}
	ranging := &fakeLink{frames: []string{"150.0 1013.0\r\n"}}
	sink := &captureSink{}

	const cycles = 5
	interval := 20 * time.Millisecond

	sched := NewScheduler(attitude, ranging, sink, 5*time.Millisecond, interval)
	for i := 0; i < cycles; i++ {
		require.NoError(t, sched.Cycle())
	}

	require.Len(t, sink.records, cycles)
	for i := 1; i < cycles; i++ {
		gap := sink.stamps[i].Sub(sink.stamps[i-1])
		require.GreaterOrEqual(t, gap, interval, "publishes %d and %d too close", i-1, i)
	}
}
