// mkfixture generates small xlsx fixture workbooks for manual runs: an
// appointments export plus the category and second-PNR lookup files.
// Usage: go run ./cmd/mkfixture --dir testdata --rows 12
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

var header = []string{
	"Data_Di_Nascita", "Descrizione_BusinessPartner", "Istituto", "Esame", "Note",
}

func main() {
	dir := flag.String("dir", "testdata", "output directory")
	rows := flag.Int("rows", 12, "appointment rows to generate")
	headerless := flag.Bool("headerless", true, "keep the data sheet headerless (header goes to the Tabella sheet)")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create dir: %v\n", err)
		os.Exit(1)
	}

	if err := writeAppointments(filepath.Join(*dir, "appointments.xlsx"), *rows, *headerless); err != nil {
		fmt.Fprintf(os.Stderr, "appointments: %v\n", err)
		os.Exit(1)
	}
	if err := writeCategories(filepath.Join(*dir, "categories.xlsx")); err != nil {
		fmt.Fprintf(os.Stderr, "categories: %v\n", err)
		os.Exit(1)
	}
	if err := writeSecondPNR(filepath.Join(*dir, "second_pnr.xlsx")); err != nil {
		fmt.Fprintf(os.Stderr, "second pnr: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d-row fixture set to %s\n", *rows, *dir)
}

// appointmentRows generates a deterministic mix: mostly adults with QUAS
// coverage, plus the occasional minor, missing birth date and foreign
// insurance so every filter has work to do.
func appointmentRows(n int, now time.Time) [][]string {
	exams := []string{"VIS001", "FIS010", "ECO200", "RMN300"}
	institutes := []string{"1", "8", "3"}

	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		birthCell := now.AddDate(-25-i%40, -(i % 11), -(i % 27)).Format("02/01/2006")
		switch {
		case i%9 == 8:
			birthCell = ""
		case i%6 == 5:
			birthCell = now.AddDate(-10-i%7, 0, 0).Format("02/01/2006")
		}

		insurance := "QUAS"
		switch {
		case i%7 == 6:
			insurance = "PRIVATO"
		case i%5 == 4:
			insurance = "QUAS-PENSIONATI"
		}

		notes := ""
		switch i % 4 {
		case 0:
			notes = fmt.Sprintf("autorizzazione XX%06d", 100000+i)
		case 1:
			notes = fmt.Sprintf("XB%06d scad %s", 200000+i,
				now.AddDate(0, 1, i%28).Format("02/01/2006"))
		case 2:
			notes = fmt.Sprintf("pagare entro %s", now.AddDate(0, 2, 0).Format("2/1"))
		}

		rows = append(rows, []string{
			birthCell,
			insurance,
			institutes[i%len(institutes)],
			exams[i%len(exams)],
			notes,
		})
	}
	return rows
}

func writeAppointments(path string, n int, headerless bool) error {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "QUAS"); err != nil {
		return err
	}

	rows := appointmentRows(n, time.Now())
	if headerless {
		if _, err := f.NewSheet("Tabella"); err != nil {
			return err
		}
		if err := writeRows(f, "Tabella", [][]string{{"esportazione interna"}, header}); err != nil {
			return err
		}
	} else {
		rows = append([][]string{header}, rows...)
	}
	if err := writeRows(f, "QUAS", rows); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeCategories(path string) error {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Codice"); err != nil {
		return err
	}
	rows := [][]string{
		{"Codice Esame SAP", "ID prestazioni"},
		{"VIS001", "2"},
		{"FIS010", "3"},
		{"ECO200", "6"},
		{"RMN300", "8"},
		{"DER100", "4"},
		{"PED200", "7"},
	}
	if err := writeRows(f, "Codice", rows); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeSecondPNR(path string) error {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "OSR"); err != nil {
		return err
	}
	if _, err := f.NewSheet("SRT"); err != nil {
		return err
	}
	if err := writeRows(f, "OSR", [][]string{{"Prestazione"}, {"VIS001"}, {"RMN300"}}); err != nil {
		return err
	}
	if err := writeRows(f, "SRT", [][]string{{"Prestazione"}, {"FIS010"}}); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}
	return nil
}
