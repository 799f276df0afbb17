package store

import (
	"context"
	"fmt"
	"strings"

	"unnichat-backend/internal/apperr"
	"unnichat-backend/internal/audit"
	"unnichat-backend/internal/auth"
	"unnichat-backend/internal/models"

	"gorm.io/gorm"
)

type CreateUserInput struct {
	Name     string          `json:"name" validate:"required,max=100"`
	Email    string          `json:"email" validate:"required,email,max=100"`
	Password string          `json:"password" validate:"required,min=6,max=72"`
	Role     models.UserRole `json:"role" validate:"required,oneof=admin client"`
	Status   models.Status   `json:"status" validate:"omitempty,oneof=active inactive"`
	TenantID *uint           `json:"tenant_id"`
}

type SetUserStatusInput struct {
	Status models.Status `json:"status" validate:"required,oneof=active inactive"`
}

const userViewColumns = "users.id, users.name, users.email, users.role, users.status, users.client_id, " +
	"clients.name AS tenant_name, users.created_at"

// auditUser is what the audit trail keeps of a user: never the hash.
type auditUser struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	Status   models.Status   `json:"status"`
	TenantID *uint           `json:"tenant_id"`
}

func toAuditUser(u models.User) auditUser {
	return auditUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Status: u.Status, TenantID: u.TenantID}
}

func (s *Store) ListUsers(ctx context.Context, identity models.Identity) ([]models.UserView, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	users := make([]models.UserView, 0)
	if err := s.usersQuery(ctx).
		Order("users.created_at DESC").
		Order("users.id DESC").
		Scan(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Store) usersQuery(ctx context.Context) *gorm.DB {
	return s.conn(ctx).
		Table("users").
		Select(userViewColumns).
		Joins("LEFT JOIN clients ON clients.id = users.client_id")
}

// Me returns the caller's own user row.
func (s *Store) Me(ctx context.Context, identity models.Identity) (*models.UserView, error) {
	var me models.UserView
	res := s.usersQuery(ctx).Where("users.id = ?", identity.UserID).Limit(1).Scan(&me)
	if res.Error != nil {
		return nil, fmt.Errorf("load current user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("user %d not found", identity.UserID)
	}
	return &me, nil
}

// FindUserByEmail serves the session issuer. The lookup is case-insensitive
// because emails are stored lower-cased.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.conn(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if isNotFound(err) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, identity models.Identity, in CreateUserInput) (uint, error) {
	if err := requireAdmin(identity); err != nil {
		return 0, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateInput(in); err != nil {
		return 0, err
	}
	if len(in.Password) > auth.MaxPasswordBytes {
		return 0, apperr.Validation("password must be at most %d bytes", auth.MaxPasswordBytes)
	}

	switch in.Role {
	case models.RoleClient:
		if in.TenantID == nil || *in.TenantID == 0 {
			return 0, apperr.Validation("tenant_id is required for client users")
		}
	case models.RoleAdmin:
		if in.TenantID != nil && *in.TenantID != 0 {
			return 0, apperr.Validation("admin users cannot be linked to a client")
		}
		in.TenantID = nil
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return 0, err
	}

	user := models.User{
		TenantID:     in.TenantID,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Status:       statusOrDefault(in.Status),
	}

	err = s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&existing).Error; err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if existing > 0 {
			return apperr.Conflict("email %s is already registered", user.Email)
		}
		if user.TenantID != nil {
			if err := ensureTenantExists(tx, *user.TenantID); err != nil {
				return err
			}
		}

		if err := tx.Create(&user).Error; err != nil {
			if isDuplicate(err) {
				return apperr.Conflict("email %s is already registered", user.Email)
			}
			return fmt.Errorf("create user: %w", err)
		}
		return audit.Record(tx, audit.Entry{
			Actor:       identity,
			TenantID:    user.TenantID,
			EntityType:  audit.EntityUser,
			EntityID:    user.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("user %s created with role %s", user.Email, user.Role),
			After:       toAuditUser(user),
		})
	})
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// SetUserStatus activates or deactivates an account. Users are never deleted.
func (s *Store) SetUserStatus(ctx context.Context, identity models.Identity, id uint, in SetUserStatusInput) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}
	if err := validateInput(in); err != nil {
		return err
	}
	if id == identity.UserID && in.Status == models.StatusInactive {
		return apperr.Validation("you cannot deactivate your own account")
	}

	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.First(&user, id).Error
		if isNotFound(err) {
			return apperr.NotFound("user %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}

		before := toAuditUser(user)
		if err := tx.Model(&user).Update("status", in.Status).Error; err != nil {
			return fmt.Errorf("update user status: %w", err)
		}
		user.Status = in.Status

		return audit.Record(tx, audit.Entry{
			Actor:       identity,
			TenantID:    user.TenantID,
			EntityType:  audit.EntityUser,
			EntityID:    user.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("user %s set %s", user.Email, in.Status),
			Before:      before,
			After:       toAuditUser(user),
		})
	})
}
