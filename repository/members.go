package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/eokafor/librarium/data"
)

type members interface {
	CreateMember(member *data.Member, idPrefix string) error
	GetMember(id int64) (*data.Member, error)
	GetAllMembers(search, status string) ([]*data.Member, error)
	UpdateMember(member *data.Member) error
	DeleteMember(id int64) error
	CountMembers() (int64, error)
}

// CreateMember creates a new member record. When the membership ID is empty
// one is assigned from a dedicated sequence, prefixed and zero-padded to
// five digits, so concurrent creates get distinct IDs.
func (r *repository) CreateMember(member *data.Member, idPrefix string) error {
	query := `
		INSERT INTO members (name, email, phone, address, membership_id, membership_date, status)
		VALUES ($1, $2, $3, $4,
			CASE WHEN $5 = '' THEN $6 || lpad(nextval('members_membership_id_seq')::text, 5, '0') ELSE $5 END,
			$7, $8)
		RETURNING id, created_at, membership_id, version`
	args := []interface{}{member.Name, member.Email, member.Phone, member.Address, member.MembershipID, idPrefix, member.MembershipDate, member.Status}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&member.ID, &member.CreatedAt, &member.MembershipID, &member.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "members_email_key"`:
			return ErrDuplicateRecord
		case err.Error() == `pq: duplicate key value violates unique constraint "members_membership_id_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetMember retrieves a member record by its ID.
func (r *repository) GetMember(id int64) (*data.Member, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, created_at, name, email, phone, address, membership_id, membership_date, status, version
		FROM members
		WHERE id = $1`
	var member data.Member
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&member.ID,
		&member.CreatedAt,
		&member.Name,
		&member.Email,
		&member.Phone,
		&member.Address,
		&member.MembershipID,
		&member.MembershipDate,
		&member.Status,
		&member.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &member, nil
}

// GetAllMembers retrieves all member records, newest first. The search term
// is a case-insensitive substring match against name, email and membership
// ID; status is an exact match. Empty values match everything.
func (r *repository) GetAllMembers(search, status string) ([]*data.Member, error) {
	query := `
		SELECT id, created_at, name, email, phone, address, membership_id, membership_date, status, version
		FROM members
		WHERE (name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%' OR membership_id ILIKE '%' || $1 || '%' OR $1 = '')
		AND (status = $2 OR $2 = '')
		ORDER BY created_at DESC, id DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, search, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	members := []*data.Member{}
	for rows.Next() {
		var member data.Member
		err := rows.Scan(
			&member.ID,
			&member.CreatedAt,
			&member.Name,
			&member.Email,
			&member.Phone,
			&member.Address,
			&member.MembershipID,
			&member.MembershipDate,
			&member.Status,
			&member.Version,
		)
		if err != nil {
			return nil, err
		}
		members = append(members, &member)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateMember updates a member record. The version check guards against
// concurrent edits.
func (r *repository) UpdateMember(member *data.Member) error {
	query := `
		UPDATE members
		SET name = $1, email = $2, phone = $3, address = $4, status = $5, version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version`
	args := []interface{}{
		member.Name,
		member.Email,
		member.Phone,
		member.Address,
		member.Status,
		member.ID,
		member.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&member.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		case err.Error() == `pq: duplicate key value violates unique constraint "members_email_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// DeleteMember deletes a member record by its ID. Issues referencing the
// member keep their row; the reference is nulled by the schema.
func (r *repository) DeleteMember(id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM members
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

// CountMembers counts all member records.
func (r *repository) CountMembers() (int64, error) {
	query := `
		SELECT count(*)
		FROM members`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var count int64
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
