/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadTable reads a CSV stream whose first row is a header and returns each
// following row keyed by column name. Short rows leave trailing columns empty.
func ReadTable(r io.Reader) ([]string, []map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	var rows []map[string]string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		record := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(row) {
				record[h] = row[i]
			} else {
				record[h] = ""
			}
		}
		rows = append(rows, record)
	}
	return header, rows, nil
}
