package fastx

import (
	"fmt"
	"io"
)

// CountRecords returns the number of records in r, consuming it entirely.
// It fails if the stream is empty or malformed (spec §4.2).
func CountRecords(r io.Reader) (int, error) {
	rd := NewReader(r)
	var rec Record
	n := 0
	for rd.Scan(&rec) {
		n++
	}
	if err := rd.Err(); err != nil {
		return 0, fmt.Errorf("fastx: counting records: %w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("fastx: no records found (empty or malformed input)")
	}
	return n, nil
}
