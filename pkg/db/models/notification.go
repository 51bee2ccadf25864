package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/agritrade/agritrade-backend/pkg/enums"
)

// Notification stores in-app inbox entries scoped to users. Rows expire after
// the configured retention window and are purged by the cron worker.
type Notification struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index"`
	Type      enums.NotificationType `gorm:"column:type;type:notification_type;not null"`
	Title     string                 `gorm:"column:title;type:text;not null"`
	Message   string                 `gorm:"column:message;type:text;not null"`
	BidID     *uuid.UUID             `gorm:"column:bid_id;type:uuid"`
	ReadAt    *time.Time             `gorm:"column:read_at"`
	ExpiresAt time.Time              `gorm:"column:expires_at;not null"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}
