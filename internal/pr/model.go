package pr

// Record is one issued Purchase Requisition number. Field names match the
// wire protocol and the local blob layout.
type Record struct {
	ID          string `json:"id"`
	PRNumber    string `json:"prNumber"`
	Date        string `json:"date"` // YYYY-MM-DD
	RequestedBy string `json:"requestedBy"`
	Vendor      string `json:"vendor"`
	Description string `json:"description"`
	Timestamp   int64  `json:"timestamp"` // epoch millis, sort order only
}

// RecommendedRequesters is the advisory requester set offered by clients.
// requestedBy is stored as free text: imported or manually entered records
// may carry any name.
var RecommendedRequesters = []string{"Idham", "Halim", "Zuraidah", "Zureen"}

// Stats summarizes the stored records for the dashboard cards.
type Stats struct {
	TotalUsed int    `json:"totalUsed"`
	ThisMonth int    `json:"thisMonth"`
	TopUser   string `json:"topUser"`
}
