package users

import (
	"context"

	"github.com/agritrade/agritrade-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes read access to user accounts. Account provisioning
// happens in the identity service, so this side only reads.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a user row by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindActiveByID loads a user and filters out deactivated accounts.
func (r *Repository) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ? AND is_active = ?", id, true).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
