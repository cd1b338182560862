package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SimpleParser reads a three-column "date,description,amount" CSV with
// YYYY-MM-DD dates. Positive amounts are spending; a leading minus marks
// money in.
type SimpleParser struct{}

// Format returns the parser name.
func (p *SimpleParser) Format() string { return "simple" }

// Parse reads the CSV, skipping a header row if the first field is "date".
func (p *SimpleParser) Parse(r io.Reader) ([]Line, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) > 0 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		records = records[1:]
	}

	var lines []Line
	for i, rec := range records {
		if _, err := time.Parse(time.DateOnly, rec[0]); err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+1, rec[0], err)
		}
		amount, err := decimal.NewFromString(strings.TrimPrefix(rec[2], "$"))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+1, rec[2], err)
		}
		lines = append(lines, Line{
			Date:        rec[0],
			Description: strings.TrimSpace(rec[1]),
			Amount:      amount.Neg(),
		})
	}
	return lines, nil
}
