package memory

import "fmt"

// uniqueViolation mirrors the unique name index the SQL and Spanner schemas
// declare. The engine checks names before writing, so it only fires when two
// writers race.
type uniqueViolation struct {
	name string
}

func (e *uniqueViolation) Error() string {
	return fmt.Sprintf("unique name constraint violated: %q", e.name)
}

func errUniqueName(name string) error {
	return &uniqueViolation{name: name}
}
