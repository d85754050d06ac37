// Copyright © 2021 The electrical authors

// Package parser turns one whitespace-delimited serial frame into typed
// field updates. The token position decides which field a value lands in,
// driven by a per-link RoleMapping table.
package parser

import (
	"strconv"
	"strings"
)

// Field names one tracked value of the fused sensor record.
type Field string

const (
	AccelerometerX Field = "accelerometer_x"
	AccelerometerY Field = "accelerometer_y"
	AccelerometerZ Field = "accelerometer_z"
	GyroscopeX     Field = "gyroscope_x"
	GyroscopeY     Field = "gyroscope_y"
	GyroscopeZ     Field = "gyroscope_z"
	Temperature1   Field = "temperature1"
	Temperature2   Field = "temperature2"
	Pressure       Field = "pressure"
	ShortDistance  Field = "short_distance"
	LongDistance   Field = "long_distance"

	// Ignored marks a token position that carries no tracked field.
	Ignored Field = ""
)

// RoleMapping assigns a Field to each zero-based token position of a line.
// Tokens beyond the end of the mapping are dropped.
type RoleMapping []Field

// Update is one parsed (field, value) pair, applied in token order.
type Update struct {
	Field Field
	Value float64
}

// Parse splits line on runs of whitespace and maps each token through roles.
// A token that fails to parse as a number yields 0.0 rather than dropping
// the frame; short lines simply yield fewer updates.
func Parse(line string, roles RoleMapping) []Update {
	tokens := strings.Fields(line)

	var updates []Update
	for i, token := range tokens {
		if i >= len(roles) {
			break
		}
		if roles[i] == Ignored {
			continue
		}
		value, err := strconv.ParseFloat(token, 64)
		if err != nil {
			value = 0.0
		}
		updates = append(updates, Update{roles[i], value})
	}
	return updates
}
