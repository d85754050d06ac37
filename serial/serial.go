// Copyright © 2021 The electrical authors

// Package serial owns the two physical sensor links. A Link is opened once
// at startup with the board's fixed line settings (9600 8N1, raw, no flow
// control) and read one frame at a time for the life of the process.
package serial

import (
	"fmt"
	"time"

	tarm "github.com/tarm/serial"
)

// FrameSize bounds a single frame read. The boards emit far shorter lines;
// the bound only caps a runaway buffer.
const FrameSize = 256

// settleDelay is how long an Arduino-class board takes to come out of the
// reset triggered by opening its port.
const settleDelay = time.Second

// Link is one open serial device. Reads block until the board emits at
// least one byte (VMIN=1, VTIME=0), so a silent board stalls the caller.
type Link struct {
	port *tarm.Port
	path string
}

// Open opens and configures the device at path. Opening with no read
// timeout puts the port in raw blocking mode. Failure here is fatal to the
// process; there is no retry.
func Open(path string, baud int) (*Link, error) {
	c := &tarm.Config{Name: path, Baud: baud}
	port, err := tarm.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Link{port: port, path: path}, nil
}

// Settle waits out the board's boot sequence, then discards whatever bytes
// it emitted while booting so the first frame read starts on a frame
// boundary.
func (l *Link) Settle() error {
	time.Sleep(settleDelay)
	if err := l.port.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", l.path, err)
	}
	return nil
}

// ReadFrame performs one blocking read and returns the bytes that were
// available when it unblocked. The boards write a whole line per burst, so
// one read is one frame by convention; no delimiter scanning happens here.
func (l *Link) ReadFrame() ([]byte, error) {
	buf := make([]byte, FrameSize)
	n, err := l.port.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.path, err)
	}
	return buf[:n], nil
}

func (l *Link) Close() error {
	return l.port.Close()
}
