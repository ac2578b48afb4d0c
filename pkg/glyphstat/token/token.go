package token

import (
	"regexp"
	"strconv"
)

// Record is one observed token occurrence. Records are created once by the
// ingest step and treated as read-only by every consumer.
type Record struct {
	Text     string `json:"text"`
	Folio    string `json:"folio"`
	Line     int    `json:"line"`
	Position int    `json:"position"`
}

var folioRe = regexp.MustCompile(`^(\d+)([rv])$`)

// FolioOrder maps a folio identifier like "103v" onto a total order.
// Recto precedes verso on the same leaf, so "104r" sorts before "104v".
// Identifiers that don't match the leaf/side convention sort first and
// fall back to lexicographic comparison via Less.
func FolioOrder(folio string) int {
	m := folioRe.FindStringSubmatch(folio)
	if m == nil {
		return 0
	}
	num, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	order := num * 2
	if m[2] == "v" {
		order++
	}
	return order
}

// Less reports whether folio a precedes folio b in manuscript order.
func Less(a, b string) bool {
	oa, ob := FolioOrder(a), FolioOrder(b)
	if oa != ob {
		return oa < ob
	}
	return a < b
}

// Texts projects records onto their token strings, preserving order.
func Texts(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Text
	}
	return out
}
