package service

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/eokafor/librarium/config"
	"github.com/eokafor/librarium/data"
	"github.com/eokafor/librarium/internal/jsonlog"
	"github.com/eokafor/librarium/repository"
)

// fakeRepo is an in-memory repository used by the service tests. It mirrors
// the guards the SQL layer enforces: the open-issue uniqueness, the bounded
// availability updates and the optimistic version checks.
type fakeRepo struct {
	mu            sync.Mutex
	books         map[int64]*data.Book
	members       map[int64]*data.Member
	issues        map[int64]*data.Issue
	nextBookID    int64
	nextMemberID  int64
	nextIssueID   int64
	membershipSeq int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		books:   make(map[int64]*data.Book),
		members: make(map[int64]*data.Member),
		issues:  make(map[int64]*data.Issue),
	}
}

func newTestService(repo repository.Repository) *service {
	return newTestServiceWithLogger(repo, jsonlog.New(io.Discard, jsonlog.LevelOff))
}

func newTestServiceWithLogger(repo repository.Repository, logger *jsonlog.Logger) *service {
	var cfg config.Config
	cfg.Circulation.LoanPeriodDays = 14
	cfg.Circulation.FinePerDay = 5
	cfg.Circulation.MembershipIDPrefix = "MEM"
	return New(cfg, logger, repo)
}

func (r *fakeRepo) seedBook(title, isbn string, quantity, available int32) *data.Book {
	book := &data.Book{
		Title:             title,
		Author:            "Test Author",
		ISBN:              isbn,
		Category:          "Fiction",
		Quantity:          quantity,
		AvailableQuantity: available,
	}
	if err := r.CreateBook(book); err != nil {
		panic(err)
	}
	return book
}

func (r *fakeRepo) seedMember(name, email, status string) *data.Member {
	member := &data.Member{
		Name:           name,
		Email:          email,
		Phone:          "0123456789",
		Address:        "1 Library Lane",
		MembershipDate: time.Now(),
		Status:         status,
	}
	if err := r.CreateMember(member, "MEM"); err != nil {
		panic(err)
	}
	return member
}

func copyBook(b *data.Book) *data.Book {
	c := *b
	return &c
}

func copyMember(m *data.Member) *data.Member {
	c := *m
	return &c
}

func (r *fakeRepo) copyIssue(i *data.Issue) *data.Issue {
	c := *i
	if i.ReturnDate != nil {
		rd := *i.ReturnDate
		c.ReturnDate = &rd
	}
	c.Book = nil
	c.Member = nil
	if book, ok := r.books[i.BookID]; ok {
		c.Book = &data.BookSummary{ID: book.ID, Title: book.Title, Author: book.Author, ISBN: book.ISBN}
	}
	if member, ok := r.members[i.MemberID]; ok {
		c.Member = &data.MemberSummary{ID: member.ID, Name: member.Name, Email: member.Email, MembershipID: member.MembershipID}
	}
	return &c
}

func (r *fakeRepo) CreateBook(book *data.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.books {
		if b.ISBN == book.ISBN {
			return repository.ErrDuplicateRecord
		}
	}
	r.nextBookID++
	book.ID = r.nextBookID
	book.CreatedAt = time.Now()
	book.Version = 1
	r.books[book.ID] = copyBook(book)
	return nil
}

func (r *fakeRepo) GetBook(id int64) (*data.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	book, ok := r.books[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return copyBook(book), nil
}

func (r *fakeRepo) GetAllBooks(search, category string) ([]*data.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	books := []*data.Book{}
	for _, b := range r.books {
		if category != "" && b.Category != category {
			continue
		}
		if search != "" {
			needle := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(b.Title), needle) &&
				!strings.Contains(strings.ToLower(b.Author), needle) &&
				!strings.Contains(strings.ToLower(b.ISBN), needle) {
				continue
			}
		}
		books = append(books, copyBook(b))
	}
	return books, nil
}

func (r *fakeRepo) UpdateBook(book *data.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.books[book.ID]
	if !ok || stored.Version != book.Version {
		return repository.ErrEditConflict
	}
	for id, b := range r.books {
		if id != book.ID && b.ISBN == book.ISBN {
			return repository.ErrDuplicateRecord
		}
	}
	book.Version++
	r.books[book.ID] = copyBook(book)
	return nil
}

func (r *fakeRepo) DeleteBook(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *fakeRepo) GetCategories() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool)
	categories := []string{}
	for _, b := range r.books {
		if !seen[b.Category] {
			seen[b.Category] = true
			categories = append(categories, b.Category)
		}
	}
	return categories, nil
}

func (r *fakeRepo) CountBooks() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.books)), nil
}

func (r *fakeRepo) SumAvailableQuantity() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for _, b := range r.books {
		sum += int64(b.AvailableQuantity)
	}
	return sum, nil
}

func (r *fakeRepo) CreateMember(member *data.Member, idPrefix string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if strings.EqualFold(m.Email, member.Email) {
			return repository.ErrDuplicateRecord
		}
		if member.MembershipID != "" && m.MembershipID == member.MembershipID {
			return repository.ErrDuplicateRecord
		}
	}
	if member.MembershipID == "" {
		r.membershipSeq++
		member.MembershipID = fmt.Sprintf("%s%05d", idPrefix, r.membershipSeq)
	}
	r.nextMemberID++
	member.ID = r.nextMemberID
	member.CreatedAt = time.Now()
	member.Version = 1
	r.members[member.ID] = copyMember(member)
	return nil
}

func (r *fakeRepo) GetMember(id int64) (*data.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	member, ok := r.members[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return copyMember(member), nil
}

func (r *fakeRepo) GetAllMembers(search, status string) ([]*data.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := []*data.Member{}
	for _, m := range r.members {
		if status != "" && m.Status != status {
			continue
		}
		if search != "" {
			needle := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(m.Name), needle) &&
				!strings.Contains(strings.ToLower(m.Email), needle) &&
				!strings.Contains(strings.ToLower(m.MembershipID), needle) {
				continue
			}
		}
		members = append(members, copyMember(m))
	}
	return members, nil
}

func (r *fakeRepo) UpdateMember(member *data.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.members[member.ID]
	if !ok || stored.Version != member.Version {
		return repository.ErrEditConflict
	}
	for id, m := range r.members {
		if id != member.ID && strings.EqualFold(m.Email, member.Email) {
			return repository.ErrDuplicateRecord
		}
	}
	member.Version++
	r.members[member.ID] = copyMember(member)
	return nil
}

func (r *fakeRepo) DeleteMember(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[id]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(r.members, id)
	for _, i := range r.issues {
		if i.MemberID == id {
			i.MemberID = 0
		}
	}
	return nil
}

func (r *fakeRepo) CountMembers() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.members)), nil
}

func (r *fakeRepo) CreateIssue(issue *data.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.issues {
		if i.BookID == issue.BookID && i.MemberID == issue.MemberID && i.Status == data.IssueStatusIssued {
			return repository.ErrDuplicateRecord
		}
	}
	book, ok := r.books[issue.BookID]
	if !ok || book.AvailableQuantity < 1 {
		return repository.ErrEditConflict
	}
	book.AvailableQuantity--
	book.Version++
	r.nextIssueID++
	issue.ID = r.nextIssueID
	issue.CreatedAt = time.Now()
	issue.Version = 1
	r.issues[issue.ID] = r.copyIssue(issue)
	return nil
}

func (r *fakeRepo) GetIssue(id int64) (*data.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	issue, ok := r.issues[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return r.copyIssue(issue), nil
}

func (r *fakeRepo) GetOpenIssue(bookID, memberID int64) (*data.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.issues {
		if i.BookID == bookID && i.MemberID == memberID && i.Status == data.IssueStatusIssued {
			return r.copyIssue(i), nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (r *fakeRepo) GetAllIssues(status string, memberID, bookID int64) ([]*data.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	issues := []*data.Issue{}
	for _, i := range r.issues {
		if status != "" && i.Status != status {
			continue
		}
		if memberID != 0 && i.MemberID != memberID {
			continue
		}
		if bookID != 0 && i.BookID != bookID {
			continue
		}
		issues = append(issues, r.copyIssue(i))
	}
	return issues, nil
}

func (r *fakeRepo) ReturnIssue(issue *data.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.issues[issue.ID]
	if !ok || stored.Version != issue.Version {
		return repository.ErrEditConflict
	}
	if issue.BookID > 0 {
		book, ok := r.books[issue.BookID]
		if !ok || book.AvailableQuantity >= book.Quantity {
			return repository.ErrEditConflict
		}
		book.AvailableQuantity++
		book.Version++
	}
	issue.Version++
	r.issues[issue.ID] = r.copyIssue(issue)
	return nil
}

func (r *fakeRepo) UpdateIssue(issue *data.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.issues[issue.ID]
	if !ok || stored.Version != issue.Version {
		return repository.ErrEditConflict
	}
	issue.Version++
	r.issues[issue.ID] = r.copyIssue(issue)
	return nil
}

func (r *fakeRepo) DeleteIssue(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	issue, ok := r.issues[id]
	if !ok {
		return repository.ErrRecordNotFound
	}
	outstanding := issue.Status == data.IssueStatusIssued || issue.Status == data.IssueStatusOverdue
	if outstanding {
		if book, ok := r.books[issue.BookID]; ok && book.AvailableQuantity < book.Quantity {
			book.AvailableQuantity++
			book.Version++
		}
	}
	delete(r.issues, id)
	return nil
}

func (r *fakeRepo) CountIssuesByStatus(status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, i := range r.issues {
		if i.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) MarkOverdueIssues(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var changed int64
	for _, i := range r.issues {
		if i.Status == data.IssueStatusIssued && i.DueDate.Before(now) {
			i.Status = data.IssueStatusOverdue
			i.Version++
			changed++
		}
	}
	return changed, nil
}
