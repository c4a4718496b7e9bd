// Package outfile writes prepared appointment batches as CSV and reads
// them back.
package outfile

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/healthforce/claimprep/internal/model"
)

// DateFormat is how expiration dates are rendered in the output file.
const DateFormat = "2006-01-02"

// Write renders a batch as CSV at path. The file is written under a temp
// name in the target directory and renamed into place, so readers never
// observe a partial file.
func Write(path string, batch *model.Batch) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".claimprep-*.csv")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	w := csv.NewWriter(tmp)
	header := append([]string{"row"}, batch.Columns...)
	header = append(header, model.DerivedColumns()...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range batch.Records {
		row, err := encodeRecord(&batch.Records[i])
		if err != nil {
			return err
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename output into place: %w", err)
	}
	return nil
}

func encodeRecord(rec *model.AppointmentRecord) ([]string, error) {
	codes := rec.PNRCodes
	if codes == nil {
		codes = []string{}
	}
	buf, err := json.Marshal(codes)
	if err != nil {
		return nil, fmt.Errorf("encode pnr codes for row %d: %w", rec.Row, err)
	}

	row := make([]string, 0, len(rec.Cells)+6)
	row = append(row, strconv.Itoa(rec.Row))
	row = append(row, rec.Cells...)
	row = append(row,
		intCell(rec.Age),
		string(buf),
		strconv.FormatBool(rec.RequiresSecondPNR),
		strCell(rec.CategoryDescription),
		dateCell(rec.ExpirationDate),
	)
	return row, nil
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func strCell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func dateCell(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(DateFormat)
}
