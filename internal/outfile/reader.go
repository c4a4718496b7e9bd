package outfile

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/healthforce/claimprep/internal/model"
)

// Record is one row read back from a prepared CSV. Values holds every cell
// keyed by column name; the derived columns are also decoded into typed
// fields.
type Record struct {
	Row                 int
	Values              map[string]string
	Age                 *int
	PNRCodes            []string
	RequiresSecondPNR   bool
	CategoryDescription *string
	ExpirationDate      *time.Time
}

// Read loads a prepared CSV and decodes the derived columns.
func Read(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("output %s has no header", path)
	}

	header := rows[0]
	idx := make(map[string]int, len(header))
	for i, c := range header {
		idx[c] = i
	}
	for _, c := range append([]string{"row"}, model.DerivedColumns()...) {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("output missing column %s", c)
		}
	}

	out := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := Record{Values: make(map[string]string, len(header))}
		for i, c := range header {
			rec.Values[c] = row[i]
		}

		rec.Row, err = strconv.Atoi(row[idx["row"]])
		if err != nil {
			return nil, fmt.Errorf("bad row number %q: %w", row[idx["row"]], err)
		}
		if v := row[idx["age"]]; v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("bad age %q: %w", v, err)
			}
			rec.Age = &n
		}
		if err := json.Unmarshal([]byte(row[idx["pnr_codes"]]), &rec.PNRCodes); err != nil {
			return nil, fmt.Errorf("bad pnr_codes %q: %w", row[idx["pnr_codes"]], err)
		}
		rec.RequiresSecondPNR = row[idx["requires_second_pnr"]] == "true"
		if v := row[idx["category_description"]]; v != "" {
			rec.CategoryDescription = &v
		}
		if v := row[idx["expiration_date"]]; v != "" {
			d, err := time.Parse(DateFormat, v)
			if err != nil {
				return nil, fmt.Errorf("bad expiration_date %q: %w", v, err)
			}
			rec.ExpirationDate = &d
		}
		out = append(out, rec)
	}
	return out, nil
}
