package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/agritrade/agritrade-backend/pkg/enums"
)

// User represents the canonical identity entity. Credential issuance lives
// outside this service; rows here mirror the identity provider.
type User struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Email       string         `gorm:"type:text;not null;uniqueIndex"`
	DisplayName string         `gorm:"column:display_name;not null"`
	Phone       *string        `gorm:"column:phone"`
	Role        enums.UserRole `gorm:"column:role;type:user_role;not null"`
	Locale      string         `gorm:"column:locale;not null;default:'en'"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
