// Package lookup loads the reference workbooks the enrichment stages
// consult: the exam-to-category mapping and the per-institute lists of
// services that need a second authorization code.
package lookup

import (
	"fmt"

	"github.com/rs/zerolog"
)

// LoadError reports a reference workbook that could not be loaded.
type LoadError struct {
	Source string
	Sheet  string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("load %s sheet %s: %v", e.Source, e.Sheet, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Tables bundles every reference table the pipeline needs.
type Tables struct {
	Categories *CategoryTable
	SecondPNR  *SecondPNRSets
}

// LoadAll loads all reference workbooks up front, so a broken lookup file
// fails the run before any records are transformed.
func LoadAll(log zerolog.Logger, categoryPath, secondPNRPath string) (*Tables, error) {
	cats, err := LoadCategoryTable(categoryPath)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("file", categoryPath).
		Int("entries", cats.Len()).
		Msg("category table loaded")

	sets, err := LoadSecondPNRSets(secondPNRPath)
	if err != nil {
		return nil, err
	}
	for _, inst := range sets.Institutes() {
		log.Info().
			Str("file", secondPNRPath).
			Int("institute", inst).
			Int("services", sets.Len(inst)).
			Msg("second PNR services loaded")
	}

	return &Tables{Categories: cats, SecondPNR: sets}, nil
}
