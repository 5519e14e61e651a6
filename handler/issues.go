package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/eokafor/librarium/data"
	"github.com/eokafor/librarium/data/dto"
	"github.com/eokafor/librarium/internal/validator"
	"github.com/eokafor/librarium/service"
	"github.com/jellydator/ttlcache/v3"
)

func (h *Handler) listIssuesHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListIssues
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Status = h.readString(qs, "status", "")
	qsInput.MemberID = h.readInt64(qs, "memberId", 0, v)
	qsInput.BookID = h.readInt64(qs, "bookId", 0, v)
	if !v.Valid() {
		h.failedValidationResponse(w, r, fmt.Errorf("%w: invalid query string", service.ErrFailedValidation))
		return
	}
	issues, err := h.service.ListIssues(qsInput.Status, qsInput.MemberID, qsInput.BookID)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"success": true, "count": len(issues), "data": issues}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showIssueHandler(w http.ResponseWriter, r *http.Request) {
	issueID, err := h.readIDParam(r, "issueId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	issue, err := h.service.GetIssue(issueID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"success": true, "data": issue}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// CreateIssue godoc
// @Summary Issue a book to a member
// @Description This endpoint checks out an available copy of a book to an active member
// @Tags issues
// @Accept json
// @Produce json
// @Success 201 {object} data.Issue
// @Failure 400
// @Failure 404
// @Failure 409
// @Router /v1/issues [post]
func (h *Handler) createIssueHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateIssueRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	issue, err := h.service.IssueBook(requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrBookNotAvailable):
			h.invalidStateResponse(w, r, "Book is not available for issue")
		case errors.Is(err, service.ErrMemberNotActive):
			h.invalidStateResponse(w, r, "Member account is not active")
		case errors.Is(err, service.ErrAlreadyIssued):
			h.conflictResponse(w, r, "This book is already issued to this member")
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/issues/%d", issue.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"success": true, "message": "Book issued successfully", "data": issue}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ReturnIssue godoc
// @Summary Return an issued book
// @Description This endpoint marks an issue returned and computes any overdue fine
// @Tags issues
// @Produce json
// @Success 200 {object} data.Issue
// @Failure 400
// @Failure 404
// @Router /v1/issues/{issueId}/return [put]
func (h *Handler) returnIssueHandler(w http.ResponseWriter, r *http.Request) {
	issueID, err := h.readIDParam(r, "issueId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	issue, err := h.service.ReturnBook(issueID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrAlreadyReturned):
			h.invalidStateResponse(w, r, "Book is already returned")
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"success": true, "message": "Book returned successfully", "data": issue}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) updateIssueHandler(w http.ResponseWriter, r *http.Request) {
	issueID, err := h.readIDParam(r, "issueId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.UpdateIssueRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	issue, err := h.service.UpdateIssue(issueID, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"success": true, "message": "Issue record updated successfully", "data": issue}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) deleteIssueHandler(w http.ResponseWriter, r *http.Request) {
	issueID, err := h.readIDParam(r, "issueId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	err = h.service.DeleteIssue(issueID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"success": true, "message": "Issue record deleted successfully"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DashboardStats godoc
// @Summary Dashboard statistics
// @Description This endpoint aggregates catalog, roster and circulation counts
// @Tags dashboard
// @Produce json
// @Success 200 {object} data.DashboardStats
// @Failure 500
// @Router /v1/issues/stats/dashboard [get]
func (h *Handler) dashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	var stats *data.DashboardStats
	if item := h.cache.Get("dashboardStats"); item != nil {
		stats = item.Value().(*data.DashboardStats)
	} else {
		var err error
		stats, err = h.service.DashboardStats()
		if err != nil {
			h.serverErrorResponse(w, r, err)
			return
		}
		h.cache.Set("dashboardStats", stats, ttlcache.DefaultTTL)
	}
	err := h.encodeJSON(w, http.StatusOK, envelope{"success": true, "data": stats}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
