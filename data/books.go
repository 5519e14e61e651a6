package data

import (
	"time"

	"github.com/eokafor/librarium/internal/validator"
)

// The Book struct contains the data fields for a catalog record. The
// availableQuantity field counts copies not currently checked out and is
// mutated only by the circulation operations.
type Book struct {
	ID                int64     `json:"id"`
	CreatedAt         time.Time `json:"createdAt"`
	Title             string    `json:"title"`
	Author            string    `json:"author"`
	ISBN              string    `json:"isbn"`
	Category          string    `json:"category"`
	Quantity          int32     `json:"quantity"`
	AvailableQuantity int32     `json:"availableQuantity"`
	Description       string    `json:"description,omitempty"`
	Version           int32     `json:"-"`
}

func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(book.Title != "", "title", "must be provided")
	v.Check(len(book.Title) <= 500, "title", "must not be more than 500 bytes long")
	v.Check(book.Author != "", "author", "must be provided")
	v.Check(len(book.Author) <= 500, "author", "must not be more than 500 bytes long")
	v.Check(book.ISBN != "", "isbn", "must be provided")
	v.Check(len(book.ISBN) <= 17, "isbn", "must not be more than 17 characters")
	v.Check(book.Category != "", "category", "must be provided")
	v.Check(book.Quantity >= 0, "quantity", "cannot be negative")
	v.Check(book.AvailableQuantity >= 0, "availableQuantity", "cannot be negative")
	v.Check(book.AvailableQuantity <= book.Quantity, "availableQuantity", "must not exceed quantity")
	v.Check(len(book.Description) <= 2000, "description", "must not be more than 2000 bytes long")
}
