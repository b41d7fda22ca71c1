package uploadmock

import (
	"encoding/csv"
	"strings"
)

// ParseCSV turns a CSV document into records keyed by the header row.
// Rows shorter than the header keep only the columns they have.
func ParseCSV(input string) ([]Record, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(input)))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []Record{}, nil
	}

	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := Record{}
		for i, col := range header {
			if i >= len(row) {
				break
			}
			record[col] = strings.TrimSpace(row[i])
		}
		records = append(records, record)
	}

	return records, nil
}
