package handler

import (
	"net/http"
	"testing"

	"github.com/eokafor/librarium/data"
	"github.com/eokafor/librarium/data/dto"
	"github.com/eokafor/librarium/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMemberHandler(t *testing.T) {
	t.Run("created with location header", func(t *testing.T) {
		h := newTestHandler(&fakeService{
			createMember: func(body dto.CreateMemberRequestBody) (*data.Member, error) {
				return &data.Member{ID: 5, Name: body.Name, MembershipID: "MEM00001"}, nil
			},
		})
		rec, env := doRequest(t, h, http.MethodPost, "/v1/members", map[string]interface{}{
			"name": "Ada Lovelace", "email": "ada@example.com",
			"phone": "0123456789", "address": "1 Library Lane",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "/v1/members/5", rec.Header().Get("Location"))
		member := env["data"].(map[string]interface{})
		assert.Equal(t, "MEM00001", member["membershipId"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		h := newTestHandler(&fakeService{
			createMember: func(body dto.CreateMemberRequestBody) (*data.Member, error) {
				return nil, service.ErrDuplicateRecord
			},
		})
		rec, env := doRequest(t, h, http.MethodPost, "/v1/members", map[string]interface{}{"name": "Ada"})
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Member with this email already exists", env["message"])
	})
}

func TestListMembersHandler(t *testing.T) {
	var gotSearch, gotStatus string
	h := newTestHandler(&fakeService{
		listMembers: func(search, status string) ([]*data.Member, error) {
			gotSearch, gotStatus = search, status
			return []*data.Member{{ID: 1, Name: "Ada Lovelace"}}, nil
		},
	})
	rec, env := doRequest(t, h, http.MethodGet, "/v1/members?search=ada&status=active", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ada", gotSearch)
	assert.Equal(t, "active", gotStatus)
	assert.Equal(t, float64(1), env["count"])
}

func TestShowMemberHandler(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		h := newTestHandler(&fakeService{
			getMember: func(id int64) (*data.Member, error) { return nil, service.ErrRecordNotFound },
		})
		rec, env := doRequest(t, h, http.MethodGet, "/v1/members/42", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, false, env["success"])
	})
}

func TestDeleteMemberHandler(t *testing.T) {
	h := newTestHandler(&fakeService{})
	rec, env := doRequest(t, h, http.MethodDelete, "/v1/members/5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Member deleted successfully", env["message"])
}
