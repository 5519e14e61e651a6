package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/eokafor/librarium/data/dto"
	"github.com/eokafor/librarium/service"
	"github.com/jellydator/ttlcache/v3"
	"github.com/julienschmidt/httprouter"
)

func (h *Handler) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListBooks
	qs := r.URL.Query()
	qsInput.Search = h.readString(qs, "search", "")
	qsInput.Category = h.readString(qs, "category", "")
	books, err := h.service.ListBooks(qsInput.Search, qsInput.Category)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"success": true, "count": len(books), "data": books}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showBookHandler(w http.ResponseWriter, r *http.Request) {
	// /v1/books/categories lands on the :bookId wildcard.
	if httprouter.ParamsFromContext(r.Context()).ByName("bookId") == "categories" {
		h.listCategoriesHandler(w, r)
		return
	}
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	book, err := h.service.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"success": true, "data": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateBookRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.CreateBook(requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.conflictResponse(w, r, "Book with this ISBN already exists")
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/books/%d", book.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"success": true, "message": "Book created successfully", "data": book}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.UpdateBookRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.UpdateBook(bookID, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.conflictResponse(w, r, "Book with this ISBN already exists")
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"success": true, "message": "Book updated successfully", "data": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "bookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	err = h.service.DeleteBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrBookCheckedOut):
			h.invalidStateResponse(w, r, "Cannot delete book that is currently issued")
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"success": true, "message": "Book deleted successfully"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ListCategories godoc
// @Summary List book categories
// @Description This endpoint lists the distinct category values across the catalog
// @Tags categories
// @Produce json
// @Success 200 {array} string
// @Failure 500
// @Router /v1/books/categories [get]
func (h *Handler) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	var categories []string
	if item := h.cache.Get("categories"); item != nil {
		categories = item.Value().([]string)
	} else {
		var err error
		categories, err = h.service.ListCategories()
		if err != nil {
			h.serverErrorResponse(w, r, err)
			return
		}
		h.cache.Set("categories", categories, ttlcache.DefaultTTL)
	}
	err := h.encodeJSON(w, http.StatusOK, envelope{"success": true, "data": categories}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
