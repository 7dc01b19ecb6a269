package domain

import (
	"strings"
	"time"
)

// Stock is the static metadata of an IDX-listed company.
type Stock struct {
	Code      string
	Name      string
	Sector    string
	SubSector string
	Indexes   []string
}

// MemberOf reports whether the stock belongs to the given index (IHSG, LQ45, IDX30).
func (s Stock) MemberOf(index string) bool {
	for _, member := range s.Indexes {
		if strings.EqualFold(member, index) {
			return true
		}
	}
	return false
}

// Filter narrows the candidate stock set before any scoring happens.
// Excluded stocks never enter the TF-IDF corpus of a run.
type Filter struct {
	Index string
	Query string
	Codes []string
	From  time.Time
	To    time.Time
}

// Matches applies index membership and code/name substring criteria.
func (f Filter) Matches(stock Stock) bool {
	if f.Index != "" && !stock.MemberOf(f.Index) {
		return false
	}
	if len(f.Codes) > 0 {
		found := false
		for _, code := range f.Codes {
			if strings.EqualFold(code, stock.Code) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(stock.Code), q) &&
			!strings.Contains(strings.ToLower(stock.Name), q) {
			return false
		}
	}
	return true
}
