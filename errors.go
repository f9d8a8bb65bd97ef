package fitfaker

import "fmt"

// OrderingError reports that a reordering constraint cannot be satisfied
// because the required predecessor message is entirely absent. The file has
// no coherent activity/session structure and is skipped.
type OrderingError struct {
	Msg string
}

func (e *OrderingError) Error() string {
	return "fit ordering: " + e.Msg
}

// Warning is a non-fatal, per-field sanitization diagnostic. Warnings never
// stop a transform.
type Warning struct {
	GlobalNum uint16
	LocalType uint8
	FieldNum  uint8
	Developer bool
	Reason    string
}

func (w Warning) String() string {
	kind := "field"
	if w.Developer {
		kind = "developer field"
	}
	return fmt.Sprintf("global message %d (local %d): dropped %s %d: %s",
		w.GlobalNum, w.LocalType, kind, w.FieldNum, w.Reason)
}
