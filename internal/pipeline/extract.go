package pipeline

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/healthforce/claimprep/internal/config"
	"github.com/healthforce/claimprep/internal/extract"
	"github.com/healthforce/claimprep/internal/model"
	"github.com/healthforce/claimprep/internal/xlsxread"
)

// Extract opens the appointments workbook and builds the initial batch. If
// the data sheet's first row carries every required column it is used as
// the header; otherwise the configured row of the header sheet is applied
// positionally.
func Extract(log zerolog.Logger, cfg *config.Config) (*model.Batch, error) {
	wb, err := xlsxread.Open(cfg.AppointmentsFile)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	rows, err := wb.Rows(cfg.AppointmentsSheet)
	if err != nil {
		return nil, err
	}

	var fallback []string
	if wb.HasSheet(cfg.HeaderSheet) {
		headerRows, err := wb.Rows(cfg.HeaderSheet)
		if err != nil {
			return nil, err
		}
		if len(headerRows) >= cfg.HeaderRow {
			fallback = headerRows[cfg.HeaderRow-1]
		}
	}

	tab, err := xlsxread.ResolveTable(cfg.AppointmentsSheet, rows, fallback, model.RequiredColumns())
	if err != nil {
		return nil, err
	}

	batch := buildBatch(tab)
	log.Info().
		Str("file", cfg.AppointmentsFile).
		Str("sheet", cfg.AppointmentsSheet).
		Int("records", batch.Len()).
		Msg("appointments detected")
	return batch, nil
}

func buildBatch(tab *xlsxread.Table) *model.Batch {
	birthIdx, _ := tab.ColumnIndex(model.ColBirthDate)
	insIdx, _ := tab.ColumnIndex(model.ColInsurance)
	instIdx, _ := tab.ColumnIndex(model.ColInstitute)
	examIdx, _ := tab.ColumnIndex(model.ColExamCode)
	notesIdx, _ := tab.ColumnIndex(model.ColNotes)

	batch := &model.Batch{Columns: tab.Columns}
	for i, row := range tab.Rows {
		batch.Records = append(batch.Records, model.AppointmentRecord{
			Row:         tab.SourceRow[i],
			Cells:       row,
			BirthDate:   extract.ParseCellDate(row[birthIdx]),
			Insurance:   row[insIdx],
			InstituteID: parseInstitute(row[instIdx]),
			ExamCode:    strings.TrimSpace(row[examIdx]),
			Notes:       row[notesIdx],
		})
	}
	return batch
}

// parseInstitute accepts integer and float-formatted cells. Anything else
// maps to institute 0, which no service list matches.
func parseInstitute(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
