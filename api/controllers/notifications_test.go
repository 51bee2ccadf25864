package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/agritrade/agritrade-backend/internal/notifications"
	"github.com/agritrade/agritrade-backend/pkg/enums"
)

type testNotificationService struct {
	notifyFn      func(ctx context.Context, input notifications.NotifyInput) error
	listFn        func(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error)
	markReadFn    func(ctx context.Context, userID, notificationID uuid.UUID) error
	markAllReadFn func(ctx context.Context, userID uuid.UUID) (int64, error)
}

func (s *testNotificationService) Notify(ctx context.Context, input notifications.NotifyInput) error {
	if s.notifyFn != nil {
		return s.notifyFn(ctx, input)
	}
	return nil
}

func (s *testNotificationService) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return &notifications.ListResult{}, nil
}

func (s *testNotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if s.markReadFn != nil {
		return s.markReadFn(ctx, userID, notificationID)
	}
	return nil
}

func (s *testNotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if s.markAllReadFn != nil {
		return s.markAllReadFn(ctx, userID)
	}
	return 0, nil
}

func TestListNotificationsForwardsParams(t *testing.T) {
	userID := uuid.New()
	var captured notifications.ListParams
	svc := &testNotificationService{
		listFn: func(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
			captured = params
			return &notifications.ListResult{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications?limit=5&unreadOnly=true&cursor=abc", nil)
	req = authedRequest(req, userID, string(enums.UserRoleBuyer))

	resp := httptest.NewRecorder()
	ListNotifications(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if captured.UserID != userID {
		t.Fatalf("user id not taken from token context: %s", captured.UserID)
	}
	if captured.Limit != 5 || !captured.UnreadOnly || captured.Cursor != "abc" {
		t.Fatalf("params not forwarded: %+v", captured)
	}
}

func TestMarkNotificationReadScopedToCaller(t *testing.T) {
	userID := uuid.New()
	notificationID := uuid.New()
	called := false
	svc := &testNotificationService{
		markReadFn: func(ctx context.Context, uid, nid uuid.UUID) error {
			called = true
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			if nid != notificationID {
				t.Fatalf("unexpected notification %s", nid)
			}
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/"+notificationID.String()+"/read", nil)
	req = authedRequest(req, userID, string(enums.UserRoleBuyer))
	req = addRouteParam(req, "notificationID", notificationID.String())

	resp := httptest.NewRecorder()
	MarkNotificationRead(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if !called {
		t.Fatal("expected service called")
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["status"] != "read" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestMarkNotificationReadInvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/invalid/read", nil)
	req = authedRequest(req, uuid.New(), string(enums.UserRoleBuyer))
	req = addRouteParam(req, "notificationID", "invalid")

	resp := httptest.NewRecorder()
	MarkNotificationRead(&testNotificationService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestMarkAllNotificationsReadReturnsCount(t *testing.T) {
	svc := &testNotificationService{
		markAllReadFn: func(ctx context.Context, userID uuid.UUID) (int64, error) {
			return 7, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/read-all", nil)
	req = authedRequest(req, uuid.New(), string(enums.UserRoleBuyer))

	resp := httptest.NewRecorder()
	MarkAllNotificationsRead(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["updated"] != 7 {
		t.Fatalf("unexpected count %d", envelope.Data["updated"])
	}
}

func TestMarkAllNotificationsReadMissingAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/read-all", nil)
	resp := httptest.NewRecorder()
	MarkAllNotificationsRead(&testNotificationService{}, testLogger())(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
