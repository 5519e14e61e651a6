package data

// DashboardStats aggregates whole-collection counts for the dashboard.
// availableBooks is the sum of availableQuantity across all books.
type DashboardStats struct {
	TotalBooks     int64 `json:"totalBooks"`
	TotalMembers   int64 `json:"totalMembers"`
	IssuedBooks    int64 `json:"issuedBooks"`
	ReturnedBooks  int64 `json:"returnedBooks"`
	AvailableBooks int64 `json:"availableBooks"`
}
