package dto

import "time"

// QsListIssues defines the query strings used for listing issues.
type QsListIssues struct {
	Status   string
	MemberID int64
	BookID   int64
}

// CreateIssueRequestBody defines the request body for IssueBook service.
// DueDate is optional; when absent it defaults to the loan period.
type CreateIssueRequestBody struct {
	BookID   int64      `json:"bookId"`
	MemberID int64      `json:"memberId"`
	DueDate  *time.Time `json:"dueDate"`
	Notes    string     `json:"notes"`
}

// UpdateIssueRequestBody defines the request body for UpdateIssue service. The fields are
// set to a pointer type to allow partial updates based on whether the value is set to nil.
// Updating these fields directly has no availability side effects.
type UpdateIssueRequestBody struct {
	DueDate    *time.Time `json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate"`
	Status     *string    `json:"status"`
	Fine       *int64     `json:"fine"`
	Notes      *string    `json:"notes"`
}
