package pr

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns a collision-resistant record id. Ids are assigned by the
// caller at creation time and opaque to the stores.
func NewID() string {
	return uuid.NewString()
}

// SeedRecords is the demo dataset written into a brand-new local store.
func SeedRecords(now time.Time) []Record {
	year := now.Format("2006")
	return []Record{{
		ID:          "1",
		PRNumber:    FormatPRNumber(year, "001"),
		Date:        year + "-10-25",
		RequestedBy: "Idham",
		Vendor:      "Office Depot",
		Description: "Office supplies for Q4",
		Timestamp:   now.UnixMilli() - 10000000,
	}}
}
