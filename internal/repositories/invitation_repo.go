package repositories

import (
	"context"
	"time"

	"garagedesk/internal/models"

	"github.com/google/uuid"
)

type InvitationRepository interface {
	Create(ctx context.Context, invitation *models.Invitation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invitation, error)
	HasPending(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Invitation, error)
	// TransitionStatus moves a pending invitation to a terminal status and
	// reports whether the row was still pending. The WHERE guard makes the
	// transition consume the invitation exactly once.
	TransitionStatus(ctx context.Context, id uuid.UUID, status string) (bool, error)
	// RevertToPending puts an accepted invitation back to pending so the
	// invitee can retry after the accept's side effects failed.
	RevertToPending(ctx context.Context, id uuid.UUID) error
	// ExpireStale marks pending invitations past their expiry. Housekeeping
	// only; read paths never rely on it.
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type invitationRepo struct {
	db DB
}

func NewInvitationRepository(db DB) InvitationRepository {
	return &invitationRepo{db: db}
}

const invitationColumns = `id, tenant_id, email, full_name, role, permissions, status, expires_at, created_by, created_at, updated_at`

func (r *invitationRepo) Create(ctx context.Context, invitation *models.Invitation) error {
	query := `
		INSERT INTO invitations (id, tenant_id, email, full_name, role, permissions, status, expires_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, invitation.ID, invitation.TenantID, invitation.Email, invitation.FullName, invitation.Role, invitation.Permissions, invitation.Status, invitation.ExpiresAt, invitation.CreatedBy)
	return err
}

func (r *invitationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invitation, error) {
	invitation := &models.Invitation{}
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&invitation.ID, &invitation.TenantID, &invitation.Email, &invitation.FullName,
		&invitation.Role, &invitation.Permissions, &invitation.Status, &invitation.ExpiresAt,
		&invitation.CreatedBy, &invitation.CreatedAt, &invitation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return invitation, nil
}

func (r *invitationRepo) HasPending(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM invitations
		WHERE tenant_id = $1 AND lower(email) = lower($2) AND status = 'pending' AND expires_at > NOW()
	`
	if err := r.db.QueryRow(ctx, query, tenantID, email).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *invitationRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Invitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM invitations
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []*models.Invitation
	for rows.Next() {
		invitation := &models.Invitation{}
		if err := rows.Scan(
			&invitation.ID, &invitation.TenantID, &invitation.Email, &invitation.FullName,
			&invitation.Role, &invitation.Permissions, &invitation.Status, &invitation.ExpiresAt,
			&invitation.CreatedBy, &invitation.CreatedAt, &invitation.UpdatedAt,
		); err != nil {
			return nil, err
		}
		invitations = append(invitations, invitation)
	}
	return invitations, nil
}

func (r *invitationRepo) TransitionStatus(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	query := `
		UPDATE invitations
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'pending'
	`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *invitationRepo) RevertToPending(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE invitations
		SET status = 'pending', updated_at = NOW()
		WHERE id = $1 AND status = 'accepted'
	`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *invitationRepo) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE invitations
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'pending' AND expires_at <= $1
	`
	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
