package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/agritrade/agritrade-backend/pkg/db/models"
	"github.com/agritrade/agritrade-backend/pkg/enums"
	pkgerrors "github.com/agritrade/agritrade-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:notifications_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Notification{}); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), 24*time.Hour)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestNotifyStampsExpiry(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	userID := uuid.New()
	bidID := uuid.New()

	err := svc.Notify(ctx, NotifyInput{
		UserID:  userID,
		Type:    enums.NotificationTypeBidReceived,
		Title:   "New bid received",
		Message: "A buyer offered on your listing",
		BidID:   &bidID,
	})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}

	var stored models.Notification
	if err := db.First(&stored, "user_id = ?", userID).Error; err != nil {
		t.Fatalf("load notification: %v", err)
	}
	if stored.BidID == nil || *stored.BidID != bidID {
		t.Fatalf("bid reference not stored")
	}
	if stored.ReadAt != nil {
		t.Fatalf("new notification must be unread")
	}
	if stored.ExpiresAt.Before(time.Now().UTC().Add(23 * time.Hour)) {
		t.Fatalf("expiry not stamped from retention ttl: %s", stored.ExpiresAt)
	}
}

func TestNotifyRejectsUnknownType(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newTestDB(t))
	err := svc.Notify(context.Background(), NotifyInput{
		UserID:  uuid.New(),
		Type:    enums.NotificationType("carrier_pigeon"),
		Title:   "t",
		Message: "m",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListPaginatesAndFiltersUnread(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	userID := uuid.New()

	base := time.Now().UTC().Add(-time.Hour)
	readAt := base.Add(30 * time.Minute)
	for i := 0; i < 5; i++ {
		notification := &models.Notification{
			ID:        uuid.New(),
			UserID:    userID,
			Type:      enums.NotificationTypeBidReceived,
			Title:     "New bid received",
			Message:   "offer",
			ExpiresAt: base.Add(24 * time.Hour),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if i < 2 {
			notification.ReadAt = &readAt
		}
		if err := db.Create(notification).Error; err != nil {
			t.Fatalf("seed notification: %v", err)
		}
	}

	page1, err := svc.List(ctx, ListParams{UserID: userID, Limit: 3})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page1.Items) != 3 || page1.Cursor == "" {
		t.Fatalf("expected full first page with cursor, got %d items", len(page1.Items))
	}

	page2, err := svc.List(ctx, ListParams{UserID: userID, Limit: 3, Cursor: page1.Cursor})
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(page2.Items) != 2 || page2.Cursor != "" {
		t.Fatalf("expected final page of 2, got %d items cursor %q", len(page2.Items), page2.Cursor)
	}

	unread, err := svc.List(ctx, ListParams{UserID: userID, Limit: 10, UnreadOnly: true})
	if err != nil {
		t.Fatalf("List unread: %v", err)
	}
	if len(unread.Items) != 3 {
		t.Fatalf("expected 3 unread, got %d", len(unread.Items))
	}
}

func TestMarkReadIsScopedToOwner(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	userID := uuid.New()

	notification := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      enums.NotificationTypeBidAccepted,
		Title:     "Bid accepted",
		Message:   "congrats",
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
	}
	if err := db.Create(notification).Error; err != nil {
		t.Fatalf("seed notification: %v", err)
	}

	// Another user cannot see or mark it.
	err := svc.MarkRead(ctx, uuid.New(), notification.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign user, got %v", err)
	}

	if err := svc.MarkRead(ctx, userID, notification.ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	// Marking twice is idempotent.
	if err := svc.MarkRead(ctx, userID, notification.ID); err != nil {
		t.Fatalf("MarkRead second call: %v", err)
	}

	var stored models.Notification
	if err := db.First(&stored, "id = ?", notification.ID).Error; err != nil {
		t.Fatalf("load notification: %v", err)
	}
	if stored.ReadAt == nil {
		t.Fatalf("read_at not set")
	}
}

func TestMarkAllReadReturnsCount(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		notification := &models.Notification{
			ID:        uuid.New(),
			UserID:    userID,
			Type:      enums.NotificationTypeBidRejected,
			Title:     "Bid rejected",
			Message:   "sorry",
			ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
		}
		if err := db.Create(notification).Error; err != nil {
			t.Fatalf("seed notification: %v", err)
		}
	}

	count, err := svc.MarkAllRead(ctx, userID)
	if err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 rows marked, got %d", count)
	}

	count, err = svc.MarkAllRead(ctx, userID)
	if err != nil {
		t.Fatalf("MarkAllRead repeat: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 on second pass, got %d", count)
	}
}

func TestDeleteExpiredKeepsLiveRows(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	expired := &models.Notification{
		ID: uuid.New(), UserID: uuid.New(),
		Type: enums.NotificationTypeBidReceived, Title: "old", Message: "old",
		ExpiresAt: now.Add(-time.Minute),
	}
	live := &models.Notification{
		ID: uuid.New(), UserID: uuid.New(),
		Type: enums.NotificationTypeBidReceived, Title: "new", Message: "new",
		ExpiresAt: now.Add(time.Hour),
	}
	for _, row := range []*models.Notification{expired, live} {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed notification: %v", err)
		}
	}

	deleted, err := repo.DeleteExpired(ctx, nil, now)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted, got %d", deleted)
	}

	var remaining int64
	if err := db.Model(&models.Notification{}).Count(&remaining).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("expected 1 remaining, got %d", remaining)
	}
}
