package runlog

import "fmt"

// SchemaError reports a required column missing from a run's schema. It
// carries enough context (robot type and column name) for the operator to
// fix the robot descriptor table or the source logs.
type SchemaError struct {
	Robot  string
	Column string
	RunID  string
}

func (e *SchemaError) Error() string {
	if e.RunID != "" {
		return fmt.Sprintf("robot %q: required column %q missing from run %q", e.Robot, e.Column, e.RunID)
	}
	return fmt.Sprintf("robot %q: required column %q missing from run schema", e.Robot, e.Column)
}
