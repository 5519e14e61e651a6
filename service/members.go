package service

import (
	"errors"
	"time"

	"github.com/eokafor/librarium/data"
	"github.com/eokafor/librarium/data/dto"
	"github.com/eokafor/librarium/internal/validator"
	"github.com/eokafor/librarium/repository"
)

type members interface {
	CreateMember(body dto.CreateMemberRequestBody) (*data.Member, error)
	GetMember(memberID int64) (*data.Member, error)
	ListMembers(search, status string) ([]*data.Member, error)
	UpdateMember(memberID int64, body dto.UpdateMemberRequestBody) (*data.Member, error)
	DeleteMember(memberID int64) error
}

// CreateMember service registers a new member. Status defaults to active
// and a membership ID is assigned when the caller does not supply one.
func (s *service) CreateMember(body dto.CreateMemberRequestBody) (*data.Member, error) {
	status := body.Status
	if status == "" {
		status = data.MemberStatusActive
	}
	member := &data.Member{
		Name:           body.Name,
		Email:          body.Email,
		Phone:          body.Phone,
		Address:        body.Address,
		MembershipID:   body.MembershipID,
		MembershipDate: time.Now(),
		Status:         status,
	}
	v := validator.New()
	if data.ValidateMember(v, member); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.CreateMember(member, s.config.Circulation.MembershipIDPrefix)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return member, nil
}

// GetMember service retrieves the details of a member.
func (s *service) GetMember(memberID int64) (*data.Member, error) {
	member, err := s.repo.GetMember(memberID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return member, nil
}

// ListMembers service retrieves all members matching an optional free-text
// search and an optional exact status.
func (s *service) ListMembers(search, status string) ([]*data.Member, error) {
	return s.repo.GetAllMembers(search, status)
}

// UpdateMember service updates the details of a member.
func (s *service) UpdateMember(memberID int64, body dto.UpdateMemberRequestBody) (*data.Member, error) {
	member, err := s.repo.GetMember(memberID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if body.Name != nil {
		member.Name = *body.Name
	}
	if body.Email != nil {
		member.Email = *body.Email
	}
	if body.Phone != nil {
		member.Phone = *body.Phone
	}
	if body.Address != nil {
		member.Address = *body.Address
	}
	if body.Status != nil {
		member.Status = *body.Status
	}
	v := validator.New()
	if data.ValidateMember(v, member); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateMember(member)
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
	return member, nil
}

// DeleteMember service deletes a member unconditionally. Issue records
// referencing the member are kept with their member reference cleared.
func (s *service) DeleteMember(memberID int64) error {
	err := s.repo.DeleteMember(memberID)
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
