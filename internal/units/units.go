// Package units provides shared constants and helpers for the
// column-naming convention used by field-test logs, where every column is
// named "<semantic_name>.<unit>" (e.g. "distance_to_target.m",
// "velocity.x.m_s").
package units

import "strings"

// Unit suffix constants.
const (
	Meters          = "m"
	MetersPerSecond = "m_s"
	Seconds         = "s"
	Count           = "count"
)

// ValidUnits contains all unit suffixes the log schema uses.
var ValidUnits = []string{Meters, MetersPerSecond, Seconds, Count}

// IsValid checks if the given unit suffix is part of the log schema.
func IsValid(unit string) bool {
	for _, u := range ValidUnits {
		if unit == u {
			return true
		}
	}
	return false
}

// Split separates a column name into its semantic part and unit suffix.
// The unit is the final dot-delimited segment; columns without a known
// unit suffix return the whole name as semantic and an empty unit.
func Split(column string) (semantic, unit string) {
	idx := strings.LastIndex(column, ".")
	if idx < 0 {
		return column, ""
	}
	suffix := column[idx+1:]
	if !IsValid(suffix) {
		return column, ""
	}
	return column[:idx], suffix
}

// Label returns a human-readable axis label for a unit suffix, for use on
// chart axes.
func Label(unit string) string {
	switch unit {
	case Meters:
		return "meters"
	case MetersPerSecond:
		return "meters/second"
	case Seconds:
		return "seconds"
	case Count:
		return "count"
	default:
		return unit
	}
}

// AxisLabel builds a chart axis label for a column, e.g.
// "distance_to_target (meters)". Columns without a unit suffix are
// returned unchanged.
func AxisLabel(column string) string {
	semantic, unit := Split(column)
	if unit == "" {
		return column
	}
	return semantic + " (" + Label(unit) + ")"
}
