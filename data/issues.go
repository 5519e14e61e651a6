package data

import (
	"time"

	"github.com/eokafor/librarium/internal/validator"
)

// Issue statuses. An issue is open while it is issued; the sweep promotes
// open issues past their due date to overdue. Returned is terminal.
const (
	IssueStatusIssued   = "issued"
	IssueStatusReturned = "returned"
	IssueStatusOverdue  = "overdue"
)

// The Issue struct links one Book and one Member in the circulation ledger.
// The Book and Member summaries are read-side joins and are never stored.
type Issue struct {
	ID         int64          `json:"id"`
	CreatedAt  time.Time      `json:"createdAt"`
	BookID     int64          `json:"bookId"`
	MemberID   int64          `json:"memberId"`
	IssueDate  time.Time      `json:"issueDate"`
	DueDate    time.Time      `json:"dueDate"`
	ReturnDate *time.Time     `json:"returnDate,omitempty"`
	Status     string         `json:"status"`
	Fine       int64          `json:"fine"`
	Notes      string         `json:"notes,omitempty"`
	Version    int32          `json:"-"`
	Book       *BookSummary   `json:"book,omitempty"`
	Member     *MemberSummary `json:"member,omitempty"`
}

// BookSummary carries the book fields joined onto issue reads.
type BookSummary struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// MemberSummary carries the member fields joined onto issue reads.
type MemberSummary struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	MembershipID string `json:"membershipId"`
}

func ValidateIssue(v *validator.Validator, issue *Issue) {
	v.Check(issue.BookID > 0, "bookId", "must be provided")
	v.Check(issue.MemberID > 0, "memberId", "must be provided")
	v.Check(!issue.DueDate.IsZero(), "dueDate", "must be provided")
	v.Check(issue.Fine >= 0, "fine", "cannot be negative")
	v.Check(validator.PermittedValue(issue.Status, IssueStatusIssued, IssueStatusReturned, IssueStatusOverdue), "status", "must be one of issued, returned or overdue")
	v.Check(len(issue.Notes) <= 2000, "notes", "must not be more than 2000 bytes long")
}

// LateFine computes the fine owed for a return. It is charged per full day
// past the due date and is zero for on-time or early returns.
func LateFine(dueDate, returnDate time.Time, finePerDay int64) int64 {
	daysLate := int64(returnDate.Sub(dueDate) / (24 * time.Hour))
	if daysLate <= 0 {
		return 0
	}
	return daysLate * finePerDay
}
