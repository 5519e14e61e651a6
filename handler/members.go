package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/eokafor/librarium/data/dto"
	"github.com/eokafor/librarium/service"
)

func (h *Handler) listMembersHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListMembers
	qs := r.URL.Query()
	qsInput.Search = h.readString(qs, "search", "")
	qsInput.Status = h.readString(qs, "status", "")
	members, err := h.service.ListMembers(qsInput.Search, qsInput.Status)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"success": true, "count": len(members), "data": members}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showMemberHandler(w http.ResponseWriter, r *http.Request) {
	memberID, err := h.readIDParam(r, "memberId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	member, err := h.service.GetMember(memberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"success": true, "data": member}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) createMemberHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.CreateMemberRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	member, err := h.service.CreateMember(requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.conflictResponse(w, r, "Member with this email already exists")
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/members/%d", member.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"success": true, "message": "Member created successfully", "data": member}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) updateMemberHandler(w http.ResponseWriter, r *http.Request) {
	memberID, err := h.readIDParam(r, "memberId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.UpdateMemberRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	member, err := h.service.UpdateMember(memberID, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrEditConflict):
			h.editConflictResponse(w, r)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.conflictResponse(w, r, "Member with this email already exists")
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"success": true, "message": "Member updated successfully", "data": member}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) deleteMemberHandler(w http.ResponseWriter, r *http.Request) {
	memberID, err := h.readIDParam(r, "memberId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	err = h.service.DeleteMember(memberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"success": true, "message": "Member deleted successfully"}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
