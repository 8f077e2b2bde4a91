package models

import "fmt"

// InvalidRowError marks a malformed spreadsheet row. The sync engine
// writes it to the row's Error column and keeps going.
type InvalidRowError struct {
	Field  string
	Reason string
}

func (e *InvalidRowError) Error() string {
	return fmt.Sprintf("invalid row: %s: %s", e.Field, e.Reason)
}
