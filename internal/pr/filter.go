package pr

import (
	"strings"
	"time"
)

// Filter narrows a record list: a free-text term over PR number, vendor and
// description, an exact requester match, and a "YYYY-MM" prefix on the date.
// Zero values match everything.
type Filter struct {
	Search      string
	RequestedBy string
	Month       string
}

func (f Filter) Match(r Record) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(r.PRNumber), term) &&
			!strings.Contains(strings.ToLower(r.Vendor), term) &&
			!strings.Contains(strings.ToLower(r.Description), term) {
			return false
		}
	}
	if f.RequestedBy != "" && f.RequestedBy != "All" && r.RequestedBy != f.RequestedBy {
		return false
	}
	if f.Month != "" && !strings.HasPrefix(r.Date, f.Month) {
		return false
	}
	return true
}

func (f Filter) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// ComputeStats derives the dashboard numbers: total records, records dated
// in now's month, and the requester with the most records ("N/A" when the
// store is empty; ties break alphabetically).
func ComputeStats(records []Record, now time.Time) Stats {
	month := now.Format("2006-01")
	st := Stats{TotalUsed: len(records), TopUser: "N/A"}

	counts := map[string]int{}
	for _, r := range records {
		if strings.HasPrefix(r.Date, month) {
			st.ThisMonth++
		}
		counts[r.RequestedBy]++
	}

	best := 0
	for user, n := range counts {
		if n > best || (n == best && best > 0 && user < st.TopUser) {
			st.TopUser = user
			best = n
		}
	}
	return st
}
