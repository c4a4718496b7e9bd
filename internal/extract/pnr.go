package extract

import "regexp"

// PNR codes as staff write them in free-text notes: two letters drawn
// from {X,B} followed by six word characters, e.g. XX123456. Matching is
// case-insensitive but the original casing is kept.
var pnrPattern = regexp.MustCompile(`(?i)\b[xb][xb]\w{6}\b`)

// PNRs returns every PNR code found in notes, in order of appearance.
// The result is empty but non-nil when notes carries no code.
func PNRs(notes string) []string {
	matches := pnrPattern.FindAllString(notes, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}
