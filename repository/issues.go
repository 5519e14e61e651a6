package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/eokafor/librarium/data"
)

type issues interface {
	CreateIssue(issue *data.Issue) error
	GetIssue(id int64) (*data.Issue, error)
	GetOpenIssue(bookID, memberID int64) (*data.Issue, error)
	GetAllIssues(status string, memberID, bookID int64) ([]*data.Issue, error)
	ReturnIssue(issue *data.Issue) error
	UpdateIssue(issue *data.Issue) error
	DeleteIssue(id int64) error
	CountIssuesByStatus(status string) (int64, error)
	MarkOverdueIssues(now time.Time) (int64, error)
}

// issueColumns is the joined projection shared by the issue reads. Books and
// members are LEFT JOINed because a member may be deleted while issue rows
// referencing them remain.
const issueColumns = `
	i.id, i.created_at, i.book_id, i.member_id, i.issue_date, i.due_date, i.return_date, i.status, i.fine, i.notes, i.version,
	b.id, b.title, b.author, b.isbn,
	m.id, m.name, m.email, m.membership_id`

// scanIssue scans one joined issue row. The book and member summaries are
// nil when the referenced record no longer exists.
func scanIssue(s interface{ Scan(dest ...interface{}) error }) (*data.Issue, error) {
	var (
		issue      data.Issue
		bookID     sql.NullInt64
		memberID   sql.NullInt64
		returnDate sql.NullTime
		bID        sql.NullInt64
		bTitle     sql.NullString
		bAuthor    sql.NullString
		bISBN      sql.NullString
		mID        sql.NullInt64
		mName      sql.NullString
		mEmail     sql.NullString
		mMemID     sql.NullString
	)
	err := s.Scan(
		&issue.ID,
		&issue.CreatedAt,
		&bookID,
		&memberID,
		&issue.IssueDate,
		&issue.DueDate,
		&returnDate,
		&issue.Status,
		&issue.Fine,
		&issue.Notes,
		&issue.Version,
		&bID,
		&bTitle,
		&bAuthor,
		&bISBN,
		&mID,
		&mName,
		&mEmail,
		&mMemID,
	)
	if err != nil {
		return nil, err
	}
	issue.BookID = bookID.Int64
	issue.MemberID = memberID.Int64
	if returnDate.Valid {
		issue.ReturnDate = &returnDate.Time
	}
	if bID.Valid {
		issue.Book = &data.BookSummary{
			ID:     bID.Int64,
			Title:  bTitle.String,
			Author: bAuthor.String,
			ISBN:   bISBN.String,
		}
	}
	if mID.Valid {
		issue.Member = &data.MemberSummary{
			ID:           mID.Int64,
			Name:         mName.String,
			Email:        mEmail.String,
			MembershipID: mMemID.String,
		}
	}
	return &issue, nil
}

// CreateIssue creates a new issue record and decrements the book's available
// quantity inside one transaction. The decrement is guarded so concurrent
// issues cannot drive availability below zero; losing the guard surfaces as
// an edit conflict.
func (r *repository) CreateIssue(issue *data.Issue) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	query := `
		INSERT INTO issues (book_id, member_id, issue_date, due_date, status, fine, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version`
	args := []interface{}{issue.BookID, issue.MemberID, issue.IssueDate, issue.DueDate, issue.Status, issue.Fine, issue.Notes}
	err = tx.QueryRowContext(ctx, query, args...).Scan(&issue.ID, &issue.CreatedAt, &issue.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "issues_open_book_member_idx"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	result, err := tx.ExecContext(ctx, `
		UPDATE books
		SET available_quantity = available_quantity - 1, version = version + 1
		WHERE id = $1 AND available_quantity > 0`, issue.BookID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEditConflict
	}
	return tx.Commit()
}

// GetIssue retrieves a joined issue record by its ID.
func (r *repository) GetIssue(id int64) (*data.Issue, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT ` + issueColumns + `
		FROM issues i
		LEFT JOIN books b ON b.id = i.book_id
		LEFT JOIN members m ON m.id = i.member_id
		WHERE i.id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	issue, err := scanIssue(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return issue, nil
}

// GetOpenIssue retrieves the open (status = issued) issue linking a book and
// a member, if one exists.
func (r *repository) GetOpenIssue(bookID, memberID int64) (*data.Issue, error) {
	query := `
		SELECT ` + issueColumns + `
		FROM issues i
		LEFT JOIN books b ON b.id = i.book_id
		LEFT JOIN members m ON m.id = i.member_id
		WHERE i.book_id = $1 AND i.member_id = $2 AND i.status = $3`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	issue, err := scanIssue(r.db.QueryRowContext(ctx, query, bookID, memberID, data.IssueStatusIssued))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return issue, nil
}

// GetAllIssues retrieves joined issue records, newest first, optionally
// filtered by status, member and book. Zero values match everything.
func (r *repository) GetAllIssues(status string, memberID, bookID int64) ([]*data.Issue, error) {
	query := `
		SELECT ` + issueColumns + `
		FROM issues i
		LEFT JOIN books b ON b.id = i.book_id
		LEFT JOIN members m ON m.id = i.member_id
		WHERE (i.status = $1 OR $1 = '')
		AND (i.member_id = $2 OR $2 = 0)
		AND (i.book_id = $3 OR $3 = 0)
		ORDER BY i.created_at DESC, i.id DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, status, memberID, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	issues := []*data.Issue{}
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return issues, nil
}

// ReturnIssue persists a return: the issue's return date, status and fine,
// plus the book availability increment, inside one transaction. The
// increment is capped at the book's total quantity.
func (r *repository) ReturnIssue(issue *data.Issue) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	query := `
		UPDATE issues
		SET return_date = $1, status = $2, fine = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version`
	err = tx.QueryRowContext(ctx, query, issue.ReturnDate, issue.Status, issue.Fine, issue.ID, issue.Version).Scan(&issue.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	// The referenced book may have been deleted after the issue was closed
	// out by other means; only then is there nothing to increment.
	if issue.BookID > 0 {
		result, err := tx.ExecContext(ctx, `
			UPDATE books
			SET available_quantity = available_quantity + 1, version = version + 1
			WHERE id = $1 AND available_quantity < quantity`, issue.BookID)
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return ErrEditConflict
		}
	}
	return tx.Commit()
}

// UpdateIssue updates the mutable fields of an issue record directly, with
// no availability side effects. The version check guards against concurrent
// edits.
func (r *repository) UpdateIssue(issue *data.Issue) error {
	query := `
		UPDATE issues
		SET due_date = $1, return_date = $2, status = $3, fine = $4, notes = $5, version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version`
	args := []interface{}{
		issue.DueDate,
		issue.ReturnDate,
		issue.Status,
		issue.Fine,
		issue.Notes,
		issue.ID,
		issue.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&issue.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeleteIssue deletes an issue record. An outstanding issue (issued or
// overdue) has its checkout reversed first, in the same transaction.
func (r *repository) DeleteIssue(id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	var (
		bookID sql.NullInt64
		status string
	)
	err = tx.QueryRowContext(ctx, `
		SELECT book_id, status
		FROM issues
		WHERE id = $1
		FOR UPDATE`, id).Scan(&bookID, &status)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	outstanding := status == data.IssueStatusIssued || status == data.IssueStatusOverdue
	if outstanding && bookID.Valid {
		_, err := tx.ExecContext(ctx, `
			UPDATE books
			SET available_quantity = available_quantity + 1, version = version + 1
			WHERE id = $1 AND available_quantity < quantity`, bookID.Int64)
		if err != nil {
			return err
		}
	}
	_, err = tx.ExecContext(ctx, `
		DELETE FROM issues
		WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// CountIssuesByStatus counts issue records with a given status.
func (r *repository) CountIssuesByStatus(status string) (int64, error) {
	query := `
		SELECT count(*)
		FROM issues
		WHERE status = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var count int64
	err := r.db.QueryRowContext(ctx, query, status).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkOverdueIssues promotes open issues past their due date to overdue and
// reports how many rows changed.
func (r *repository) MarkOverdueIssues(now time.Time) (int64, error) {
	query := `
		UPDATE issues
		SET status = $1, version = version + 1
		WHERE status = $2 AND due_date < $3`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, data.IssueStatusOverdue, data.IssueStatusIssued, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
