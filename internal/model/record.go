package model

import "time"

// Input column names as the hospital scheduling export writes them.
const (
	ColBirthDate = "Data_Di_Nascita"
	ColInsurance = "Descrizione_BusinessPartner"
	ColInstitute = "Istituto"
	ColExamCode  = "Esame"
	ColNotes     = "Note"
)

// RequiredColumns lists the columns every appointment export must carry.
func RequiredColumns() []string {
	return []string{
		ColBirthDate,
		ColInsurance,
		ColInstitute,
		ColExamCode,
		ColNotes,
	}
}

// AppointmentRecord is a single appointment row plus the fields derived
// during preparation. Derived fields use pointers so "not yet computed"
// and "computed, absent" stay distinguishable.
type AppointmentRecord struct {
	// Row is the 1-based row in the source sheet, the record's only
	// stable identity across stages and into the output file.
	Row int
	// Cells holds the original cell values, aligned with Batch.Columns.
	// They pass through to the output untouched.
	Cells []string

	// Parsed from the input columns at extraction.
	BirthDate   *time.Time
	Insurance   string
	InstituteID int
	ExamCode    string
	Notes       string

	// Derived by the pipeline stages.
	Age                 *int
	PNRCodes            []string
	RequiresSecondPNR   bool
	CategoryDescription *string
	ExpirationDate      *time.Time
}

// Batch is what the pipeline stages pass along: the source column order
// plus the records still in play. Stages return new batches; filters only
// remove records, enrichments must preserve the count.
type Batch struct {
	Columns []string
	Records []AppointmentRecord
}

// Len returns the number of records in the batch.
func (b *Batch) Len() int {
	return len(b.Records)
}

// DerivedColumns returns the output column names appended after the
// source columns, in writing order.
func DerivedColumns() []string {
	return []string{
		"age",
		"pnr_codes",
		"requires_second_pnr",
		"category_description",
		"expiration_date",
	}
}
