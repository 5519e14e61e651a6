package dto

// QsListMembers defines the query strings used for listing members.
type QsListMembers struct {
	Search string
	Status string
}

// CreateMemberRequestBody defines the request body for CreateMember service.
// MembershipID is optional; when empty an ID is assigned from the sequence.
type CreateMemberRequestBody struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	MembershipID string `json:"membershipId"`
	Status       string `json:"status"`
}

// UpdateMemberRequestBody defines the request body for UpdateMember service. The fields are
// set to a pointer type to allow partial updates based on whether the value is set to nil.
type UpdateMemberRequestBody struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Status  *string `json:"status"`
}
