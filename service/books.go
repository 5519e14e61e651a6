package service

import (
	"errors"

	"github.com/eokafor/librarium/data"
	"github.com/eokafor/librarium/data/dto"
	"github.com/eokafor/librarium/internal/validator"
	"github.com/eokafor/librarium/repository"
)

type books interface {
	CreateBook(body dto.CreateBookRequestBody) (*data.Book, error)
	GetBook(bookID int64) (*data.Book, error)
	ListBooks(search, category string) ([]*data.Book, error)
	UpdateBook(bookID int64, body dto.UpdateBookRequestBody) (*data.Book, error)
	DeleteBook(bookID int64) error
	ListCategories() ([]string, error)
}

// CreateBook service creates a new catalog record. All copies of a new book
// start out available.
func (s *service) CreateBook(body dto.CreateBookRequestBody) (*data.Book, error) {
	book := &data.Book{
		Title:             body.Title,
		Author:            body.Author,
		ISBN:              body.ISBN,
		Category:          body.Category,
		Quantity:          body.Quantity,
		AvailableQuantity: body.Quantity,
		Description:       body.Description,
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.CreateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return book, nil
}

// GetBook service retrieves the details of a book.
func (s *service) GetBook(bookID int64) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// ListBooks service retrieves all books matching an optional free-text
// search and an optional exact category.
func (s *service) ListBooks(search, category string) ([]*data.Book, error) {
	return s.repo.GetAllBooks(search, category)
}

// UpdateBook service updates the details of a book. A quantity change
// applies the same signed delta to the available quantity, preserving the
// number of copies currently checked out.
func (s *service) UpdateBook(bookID int64, body dto.UpdateBookRequestBody) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if body.Title != nil {
		book.Title = *body.Title
	}
	if body.Author != nil {
		book.Author = *body.Author
	}
	if body.ISBN != nil {
		book.ISBN = *body.ISBN
	}
	if body.Category != nil {
		book.Category = *body.Category
	}
	if body.Quantity != nil && *body.Quantity != book.Quantity {
		delta := *body.Quantity - book.Quantity
		book.Quantity = *body.Quantity
		book.AvailableQuantity += delta
	}
	if body.Description != nil {
		book.Description = *body.Description
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return book, nil
}

// DeleteBook service deletes a book. A book with outstanding checkouts
// cannot be deleted.
func (s *service) DeleteBook(bookID int64) error {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	if book.AvailableQuantity < book.Quantity {
		return ErrBookCheckedOut
	}
	err = s.repo.DeleteBook(bookID)
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

// ListCategories service retrieves the distinct category values across the
// catalog.
func (s *service) ListCategories() ([]string, error) {
	return s.repo.GetCategories()
}
