package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/eokafor/librarium/data"
	"github.com/eokafor/librarium/data/dto"
	"github.com/eokafor/librarium/internal/validator"
	"github.com/eokafor/librarium/repository"
)

type issues interface {
	IssueBook(body dto.CreateIssueRequestBody) (*data.Issue, error)
	GetIssue(issueID int64) (*data.Issue, error)
	ListIssues(status string, memberID, bookID int64) ([]*data.Issue, error)
	ReturnBook(issueID int64) (*data.Issue, error)
	UpdateIssue(issueID int64, body dto.UpdateIssueRequestBody) (*data.Issue, error)
	DeleteIssue(issueID int64) error
	DashboardStats() (*data.DashboardStats, error)
	MarkOverdueIssues() (int64, error)
}

// IssueBook service checks out a copy of a book to a member. The book must
// have an available copy, the member must be active, and the pair must not
// already have an open issue. The issue record and the availability
// decrement are persisted together.
func (s *service) IssueBook(body dto.CreateIssueRequestBody) (*data.Issue, error) {
	book, err := s.repo.GetBook(body.BookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if book.AvailableQuantity < 1 {
		return nil, ErrBookNotAvailable
	}
	member, err := s.repo.GetMember(body.MemberID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if member.Status != data.MemberStatusActive {
		return nil, ErrMemberNotActive
	}
	_, err = s.repo.GetOpenIssue(body.BookID, body.MemberID)
	if err == nil {
		return nil, ErrAlreadyIssued
	}
	if !errors.Is(err, repository.ErrRecordNotFound) {
		return nil, err
	}
	now := time.Now()
	dueDate := now.AddDate(0, 0, s.config.Circulation.LoanPeriodDays)
	if body.DueDate != nil {
		dueDate = *body.DueDate
	}
	issue := &data.Issue{
		BookID:    body.BookID,
		MemberID:  body.MemberID,
		IssueDate: now,
		DueDate:   dueDate,
		Status:    data.IssueStatusIssued,
		Notes:     body.Notes,
	}
	v := validator.New()
	if data.ValidateIssue(v, issue); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.CreateIssue(issue)
	if err != nil {
		switch {
		// The open-issue index or the guarded decrement lost a race with a
		// concurrent request; report the same failures as the pre-checks.
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrAlreadyIssued
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrBookNotAvailable
		default:
			return nil, err
		}
	}
	return s.GetIssue(issue.ID)
}

// GetIssue service retrieves an issue with its book and member summaries.
func (s *service) GetIssue(issueID int64) (*data.Issue, error) {
	issue, err := s.repo.GetIssue(issueID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return issue, nil
}

// ListIssues service retrieves issues optionally filtered by status, member
// and book, joined with book and member summaries.
func (s *service) ListIssues(status string, memberID, bookID int64) ([]*data.Issue, error) {
	return s.repo.GetAllIssues(status, memberID, bookID)
}

// ReturnBook service closes out an issue: it stamps the return date, marks
// the issue returned, computes the fine once, and restores one unit of the
// book's availability. Overdue issues return normally.
func (s *service) ReturnBook(issueID int64) (*data.Issue, error) {
	issue, err := s.GetIssue(issueID)
	if err != nil {
		return nil, err
	}
	if issue.Status == data.IssueStatusReturned {
		return nil, ErrAlreadyReturned
	}
	now := time.Now()
	issue.ReturnDate = &now
	issue.Status = data.IssueStatusReturned
	if fine := data.LateFine(issue.DueDate, now, s.config.Circulation.FinePerDay); fine > 0 {
		issue.Fine = fine
	}
	err = s.repo.ReturnIssue(issue)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return s.GetIssue(issueID)
}

// UpdateIssue service updates an issue record's fields directly. No
// availability bookkeeping happens here; the delete and return operations
// own that.
func (s *service) UpdateIssue(issueID int64, body dto.UpdateIssueRequestBody) (*data.Issue, error) {
	issue, err := s.GetIssue(issueID)
	if err != nil {
		return nil, err
	}
	if body.DueDate != nil {
		issue.DueDate = *body.DueDate
	}
	if body.ReturnDate != nil {
		issue.ReturnDate = body.ReturnDate
	}
	if body.Status != nil {
		issue.Status = *body.Status
	}
	if body.Fine != nil {
		issue.Fine = *body.Fine
	}
	if body.Notes != nil {
		issue.Notes = *body.Notes
	}
	v := validator.New()
	if data.ValidateIssue(v, issue); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateIssue(issue)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return s.GetIssue(issueID)
}

// DeleteIssue service removes an issue record. If the issue is still
// outstanding the checkout is reversed before removal.
func (s *service) DeleteIssue(issueID int64) error {
	err := s.repo.DeleteIssue(issueID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// DashboardStats service aggregates the whole-collection counts shown on
// the dashboard.
func (s *service) DashboardStats() (*data.DashboardStats, error) {
	totalBooks, err := s.repo.CountBooks()
	if err != nil {
		return nil, err
	}
	totalMembers, err := s.repo.CountMembers()
	if err != nil {
		return nil, err
	}
	issuedBooks, err := s.repo.CountIssuesByStatus(data.IssueStatusIssued)
	if err != nil {
		return nil, err
	}
	returnedBooks, err := s.repo.CountIssuesByStatus(data.IssueStatusReturned)
	if err != nil {
		return nil, err
	}
	availableBooks, err := s.repo.SumAvailableQuantity()
	if err != nil {
		return nil, err
	}
	return &data.DashboardStats{
		TotalBooks:     totalBooks,
		TotalMembers:   totalMembers,
		IssuedBooks:    issuedBooks,
		ReturnedBooks:  returnedBooks,
		AvailableBooks: availableBooks,
	}, nil
}

// MarkOverdueIssues service promotes open issues past their due date to
// overdue. The cron scheduler calls this on its configured schedule.
func (s *service) MarkOverdueIssues() (int64, error) {
	marked, err := s.repo.MarkOverdueIssues(time.Now())
	if err != nil {
		s.logger.PrintError(err, map[string]string{"job": "overdue sweep"})
		return 0, err
	}
	s.logger.PrintInfo("overdue sweep completed", map[string]string{
		"marked": strconv.FormatInt(marked, 10),
	})
	return marked, nil
}
