package pipeline

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/healthforce/claimprep/internal/extract"
	"github.com/healthforce/claimprep/internal/lookup"
	"github.com/healthforce/claimprep/internal/model"
)

// EnrichPNR scans each record's notes for authorization codes.
func EnrichPNR(log zerolog.Logger, batch *model.Batch) *model.Batch {
	out := emptyLike(batch)
	withCodes := 0
	for _, rec := range batch.Records {
		rec.PNRCodes = extract.PNRs(rec.Notes)
		if len(rec.PNRCodes) > 0 {
			withCodes++
		}
		out.Records = append(out.Records, rec)
	}
	log.Info().
		Int("with_codes", withCodes).
		Int("records", out.Len()).
		Msg("PNR codes extracted")
	return out
}

// EnrichSecondPNR flags records whose service needs a second authorization
// code at their institute.
func EnrichSecondPNR(log zerolog.Logger, batch *model.Batch, sets *lookup.SecondPNRSets) (*model.Batch, int) {
	out := emptyLike(batch)
	flagged := 0
	for _, rec := range batch.Records {
		rec.RequiresSecondPNR = sets.Requires(rec.InstituteID, rec.ExamCode)
		if rec.RequiresSecondPNR {
			flagged++
		}
		out.Records = append(out.Records, rec)
	}
	log.Info().
		Int("flagged", flagged).
		Int("records", out.Len()).
		Msg("second PNR requirements flagged")
	return out, flagged
}

// EnrichCategory joins each record against the category table. A record
// whose exam code is not in the table keeps a null description. A code
// listed under more than one category duplicates its record, which the
// count check after this stage turns into a DataIntegrityError.
func EnrichCategory(log zerolog.Logger, batch *model.Batch, cats *lookup.CategoryTable) *model.Batch {
	out := emptyLike(batch)
	unmatched := 0
	for _, rec := range batch.Records {
		entries := cats.Lookup(rec.ExamCode)
		if len(entries) == 0 {
			unmatched++
			out.Records = append(out.Records, rec)
			continue
		}
		for _, entry := range entries {
			dup := rec
			if label, ok := model.CategoryLabel(entry.CategoryID); ok {
				dup.CategoryDescription = &label
			}
			out.Records = append(out.Records, dup)
		}
	}
	log.Info().
		Int("unmatched", unmatched).
		Int("records", out.Len()).
		Msg("categories joined")
	return out
}

// EnrichExpiration reads the first date-like token in each record's notes
// as a day-first expiration date. Records without a readable token keep a
// null date.
func EnrichExpiration(log zerolog.Logger, batch *model.Batch, now time.Time) *model.Batch {
	out := emptyLike(batch)
	withDates := 0
	for _, rec := range batch.Records {
		if tokens := extract.DateTokens(rec.Notes); len(tokens) > 0 {
			rec.ExpirationDate = extract.ParseDayFirst(tokens[0], now)
		}
		if rec.ExpirationDate != nil {
			withDates++
		}
		out.Records = append(out.Records, rec)
	}
	log.Info().
		Int("with_dates", withDates).
		Int("records", out.Len()).
		Msg("expiration dates extracted")
	return out
}
