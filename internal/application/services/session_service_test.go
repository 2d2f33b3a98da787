package services

import (
	"errors"
	"testing"
	"time"
)

func TestSessionServiceCreateAcceptsUnknownUser(t *testing.T) {
	m, _ := newTestEngine()
	sessionService := NewSessionService(m, nil)

	// The user reference is informational; creation never validates it.
	userID := "u-never-registered"
	record := sessionService.Create(&userID, nil)

	if record.UserID == nil || *record.UserID != userID {
		t.Errorf("UserID = %v; want %q stored as-is", record.UserID, userID)
	}
}

func TestSessionServiceLogoutCascadesAndIsIdempotent(t *testing.T) {
	m, _ := newTestEngine()
	sessionService := NewSessionService(m, nil)
	cartService := NewCartService(m, nil)

	record := sessionService.Create(nil, nil)
	if _, err := cartService.AddItem(record.ID, "p-mug", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if !sessionService.Logout(record.ID) {
		t.Error("first Logout = false; want true")
	}
	if sessionService.Logout(record.ID) {
		t.Error("second Logout = true; want false")
	}

	if m.CartCount() != 0 {
		t.Errorf("CartCount() = %d after logout; want 0", m.CartCount())
	}
	if _, err := sessionService.Get(record.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get after logout = %v; want ErrSessionNotFound", err)
	}
}

func TestSessionServiceUpdateMergesData(t *testing.T) {
	m, _ := newTestEngine()
	sessionService := NewSessionService(m, nil)

	record := sessionService.Create(nil, map[string]any{"step": "browse", "theme": "dark"})

	updated, err := sessionService.Update(record.ID, map[string]any{"step": "checkout"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Data["step"] != "checkout" || updated.Data["theme"] != "dark" {
		t.Errorf("Data = %v; want step overwritten and theme preserved", updated.Data)
	}
}

func TestSessionServiceExpiredUpdateFails(t *testing.T) {
	m, current := newTestEngine()
	sessionService := NewSessionService(m, nil)

	record := sessionService.Create(nil, nil)
	*current = current.Add(testTTL + time.Second)

	if _, err := sessionService.Update(record.ID, map[string]any{"k": "v"}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Update error = %v; want ErrSessionNotFound", err)
	}
}
