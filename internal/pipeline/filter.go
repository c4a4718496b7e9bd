package pipeline

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/healthforce/claimprep/internal/extract"
	"github.com/healthforce/claimprep/internal/model"
)

// AdultAge is the minimum age, inclusive, for a record to survive the age
// filter.
const AdultAge = 18

// FilterAdults removes records younger than AdultAge as of now, along with
// records whose birth date could not be read. Ages are stamped on the
// records that remain. Returns the filtered batch plus the minor and
// unknown-birth-date counts.
func FilterAdults(log zerolog.Logger, batch *model.Batch, now time.Time) (*model.Batch, int, int) {
	out := emptyLike(batch)
	minors, unknown := 0, 0
	for _, rec := range batch.Records {
		age := extract.Age(rec.BirthDate, now)
		if age == nil {
			unknown++
			continue
		}
		if *age < AdultAge {
			minors++
			continue
		}
		rec.Age = age
		out.Records = append(out.Records, rec)
	}

	if minors == 0 && unknown == 0 {
		log.Info().Msg("no minor patients detected")
	} else {
		log.Info().
			Int("minors", minors).
			Int("unknown_birth_date", unknown).
			Int("remaining", out.Len()).
			Msg("minor patients removed")
	}
	return out, minors, unknown
}

// FilterInsurance keeps records whose insurance description exactly matches
// one of the accepted values. The input file is supposed to be pre-filtered
// upstream, so every removal is logged at warn level.
func FilterInsurance(log zerolog.Logger, batch *model.Batch, accepted []string) (*model.Batch, int) {
	ok := make(map[string]bool, len(accepted))
	for _, a := range accepted {
		ok[a] = true
	}

	out := emptyLike(batch)
	removed := 0
	for _, rec := range batch.Records {
		if !ok[rec.Insurance] {
			removed++
			log.Warn().
				Int("row", rec.Row).
				Str("insurance", rec.Insurance).
				Msg("record with unexpected insurance removed")
			continue
		}
		out.Records = append(out.Records, rec)
	}

	if removed > 0 {
		log.Warn().
			Err(&FilterAnomaly{Stage: StageInsurance, Removed: removed}).
			Int("remaining", out.Len()).
			Msg("insurance filter removed records")
	}
	return out, removed
}

func emptyLike(batch *model.Batch) *model.Batch {
	return &model.Batch{
		Columns: batch.Columns,
		Records: make([]model.AppointmentRecord, 0, batch.Len()),
	}
}
