package model

// Category is one entry of the insurer's service taxonomy.
type Category struct {
	ID    int
	Label string
}

// Categories lists the insurer's service categories in canonical order.
// The category workbook maps exam codes to these ids.
var Categories = []Category{
	{ID: 1, Label: "other services or none of the list"},
	{ID: 2, Label: "specialist visits"},
	{ID: 3, Label: "physiotherapy (capped annual amount)"},
	{ID: 4, Label: "dermatological surgery"},
	{ID: 5, Label: "specialist visits during pregnancy (insured member)"},
	{ID: 6, Label: "pregnancy ultrasounds"},
	{ID: 7, Label: "pediatric specialist visits (child coverage)"},
	{ID: 8, Label: "prevention"},
	{ID: 9, Label: "physiotherapy beyond annual cap (special conditions only)"},
	{ID: 10, Label: "specialist visits (child coverage, non-pediatric)"},
}

// CategoryLabel returns the label for the given id, or ok=false when the
// id is not part of the taxonomy.
func CategoryLabel(id int) (string, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c.Label, true
		}
	}
	return "", false
}
