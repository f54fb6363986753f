package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/trayd-platform/trayd_service/internal/domain/entities"
	domainerrors "github.com/trayd-platform/trayd_service/internal/domain/errors"
)

// UserRepository reads member identity and network structure. It never
// touches wallet state.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const profileColumns = `
	u.id, u.member_code, u.username, u.name, u.email, u.phone, u.country,
	u.sponsor_id, s.member_code AS sponsor_code, COALESCE(s.name, '') AS sponsor_name,
	u.wallet_address, u.image_url, u.position, u.status, u.joined_at`

// GetProfile returns a member's profile with the sponsor reference resolved.
func (r *UserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error) {
	var profile entities.UserProfile
	query := `
		SELECT ` + profileColumns + `
		FROM users u
		LEFT JOIN users s ON s.id = u.sponsor_id
		WHERE u.id = $1`

	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// ProfileUpdate carries the column changes UpdateProfile applies. Password
// fields arrive already hashed.
type ProfileUpdate struct {
	Name                    string
	Phone                   string
	Email                   string
	Country                 string
	WalletAddress           string
	PasswordHash            string
	TransactionPasswordHash string
}

// UpdateProfile applies the non-empty fields of the update. It returns
// ErrAlreadyExists when the new email collides with another account.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) error {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	add("name", update.Name)
	add("phone", update.Phone)
	add("email", update.Email)
	add("country", update.Country)
	add("wallet_address", update.WalletAddress)
	add("password_hash", update.PasswordHash)
	add("transaction_password_hash", update.TransactionPasswordHash)

	if len(args) == 0 {
		return nil
	}

	args = append(args, userID)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return fmt.Errorf("update profile: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if affected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

// ListDirectReferrals returns the members sponsored by userID, oldest first,
// with their active package count and purchase total.
func (r *UserRepository) ListDirectReferrals(ctx context.Context, userID uuid.UUID) ([]*entities.TeamMember, error) {
	members := []*entities.TeamMember{}
	query := `
		SELECT u.id, u.member_code, u.name, u.country, u.phone, u.email,
		       u.position, u.status, u.joined_at,
		       COALESCE(p.total_active, 0) AS total_active,
		       COALESCE(p.total_purchase, 0) AS total_purchase
		FROM users u
		LEFT JOIN (
			SELECT user_id,
			       COUNT(*) FILTER (WHERE status = 'active') AS total_active,
			       COALESCE(SUM(amount), 0) AS total_purchase
			FROM purchase_history
			GROUP BY user_id
		) p ON p.user_id = u.id
		WHERE u.sponsor_id = $1
		ORDER BY u.joined_at ASC`

	if err := r.db.SelectContext(ctx, &members, query, userID); err != nil {
		return nil, fmt.Errorf("list direct referrals: %w", err)
	}
	for i, m := range members {
		m.SlNo = i + 1
	}
	return members, nil
}

// ListChildren returns the members placed directly under userID in the
// binary tree, left leg first.
func (r *UserRepository) ListChildren(ctx context.Context, userID uuid.UUID) ([]*entities.UserProfile, error) {
	children := []*entities.UserProfile{}
	query := `
		SELECT ` + profileColumns + `
		FROM users u
		LEFT JOIN users s ON s.id = u.sponsor_id
		WHERE u.sponsor_id = $1 AND u.position IS NOT NULL
		ORDER BY u.position ASC`

	if err := r.db.SelectContext(ctx, &children, query, userID); err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	return children, nil
}
