package pipeline

import "fmt"

// DataIntegrityError reports a transformation stage that changed the record
// count when it must not.
type DataIntegrityError struct {
	Stage  string
	Before int
	After  int
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("%s: record count changed from %d to %d", e.Stage, e.Before, e.After)
}

// FilterAnomaly describes records a filter dropped for reasons worth eyes
// on. It is logged, never returned.
type FilterAnomaly struct {
	Stage   string
	Removed int
}

func (e *FilterAnomaly) Error() string {
	return fmt.Sprintf("%s: %d records removed", e.Stage, e.Removed)
}
