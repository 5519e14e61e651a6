package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/eokafor/librarium/data"
)

type books interface {
	CreateBook(book *data.Book) error
	GetBook(id int64) (*data.Book, error)
	GetAllBooks(search, category string) ([]*data.Book, error)
	UpdateBook(book *data.Book) error
	DeleteBook(id int64) error
	GetCategories() ([]string, error)
	CountBooks() (int64, error)
	SumAvailableQuantity() (int64, error)
}

// CreateBook creates a new book record.
func (r *repository) CreateBook(book *data.Book) error {
	query := `
		INSERT INTO books (title, author, isbn, category, quantity, available_quantity, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version`
	args := []interface{}{book.Title, book.Author, book.ISBN, book.Category, book.Quantity, book.AvailableQuantity, book.Description}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.ID, &book.CreatedAt, &book.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "books_isbn_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetBook retrieves a book record by its ID.
func (r *repository) GetBook(id int64) (*data.Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, created_at, title, author, isbn, category, quantity, available_quantity, description, version
		FROM books
		WHERE id = $1`
	var book data.Book
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.CreatedAt,
		&book.Title,
		&book.Author,
		&book.ISBN,
		&book.Category,
		&book.Quantity,
		&book.AvailableQuantity,
		&book.Description,
		&book.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAllBooks retrieves all book records, newest first. The search term is a
// case-insensitive substring match against title, author and isbn; category
// is an exact match. Empty values match everything.
func (r *repository) GetAllBooks(search, category string) ([]*data.Book, error) {
	query := `
		SELECT id, created_at, title, author, isbn, category, quantity, available_quantity, description, version
		FROM books
		WHERE (title ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%' OR isbn ILIKE '%' || $1 || '%' OR $1 = '')
		AND (category = $2 OR $2 = '')
		ORDER BY created_at DESC, id DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, search, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		err := rows.Scan(
			&book.ID,
			&book.CreatedAt,
			&book.Title,
			&book.Author,
			&book.ISBN,
			&book.Category,
			&book.Quantity,
			&book.AvailableQuantity,
			&book.Description,
			&book.Version,
		)
		if err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateBook updates a book record. The version check guards against
// concurrent edits.
func (r *repository) UpdateBook(book *data.Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, isbn = $3, category = $4, quantity = $5, available_quantity = $6, description = $7, version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING version`
	args := []interface{}{
		book.Title,
		book.Author,
		book.ISBN,
		book.Category,
		book.Quantity,
		book.AvailableQuantity,
		book.Description,
		book.ID,
		book.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		case err.Error() == `pq: duplicate key value violates unique constraint "books_isbn_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// DeleteBook deletes a book record by its ID.
func (r *repository) DeleteBook(id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM books
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// GetCategories retrieves the set of distinct category values across all books.
func (r *repository) GetCategories() ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM books
		ORDER BY category ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	categories := []string{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

// CountBooks counts all book records.
func (r *repository) CountBooks() (int64, error) {
	query := `
		SELECT count(*)
		FROM books`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var count int64
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SumAvailableQuantity sums available_quantity across all books.
func (r *repository) SumAvailableQuantity() (int64, error) {
	query := `
		SELECT COALESCE(SUM(available_quantity), 0)
		FROM books`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var sum int64
	err := r.db.QueryRowContext(ctx, query).Scan(&sum)
	if err != nil {
		return 0, err
	}
	return sum, nil
}
