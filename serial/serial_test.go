// Copyright © 2021 The electrical authors

package serial

import (
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingDevice(t *testing.T) {
	_, err := Open("/dev/does-not-exist", 9600)
	require.Error(t, err)
}

func TestReadFrame(t *testing.T) {
	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close(); slave.Close() })

	link, err := Open(slave.Name(), 9600)
	require.NoError(t, err)
	t.Cleanup(func() { link.Close() })

	frames := make(chan []byte, 1)
	errors := make(chan error, 1)
	go func() {
		frame, err := link.ReadFrame()
		if err != nil {
			errors <- err
			return
		}
		frames <- frame
	}()

	_, err = master.Write([]byte("23.5 19.1\r\n"))
	require.NoError(t, err)

	select {
	case frame := <-frames:
		require.Equal(t, "23.5 19.1\r\n", string(frame))
	case err := <-errors:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for frame")
	}
}

func TestSettleDiscardsBootBytes(t *testing.T) {
	master, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { master.Close(); slave.Close() })

	link, err := Open(slave.Name(), 9600)
	require.NoError(t, err)
	t.Cleanup(func() { link.Close() })

	// Bytes emitted during the board's boot must never reach a frame read.
	_, err = master.Write([]byte("boot garbage"))
	require.NoError(t, err)

	require.NoError(t, link.Settle())

	frames := make(chan []byte, 1)
	errors := make(chan error, 1)
	go func() {
		frame, err := link.ReadFrame()
		if err != nil {
			errors <- err
			return
		}
		frames <- frame
	}()

	_, err = master.Write([]byte("150.0 1013.0\r\n"))
	require.NoError(t, err)

	select {
	case frame := <-frames:
		require.Equal(t, "150.0 1013.0\r\n", string(frame))
	case err := <-errors:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for frame")
	}
}
