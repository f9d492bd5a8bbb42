package hotel

import (
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func TestSessionRoundTrip(t *testing.T) {
	store := tempStore(t)

	saved := User{ID: 7, Username: "alice", Email: "alice@example.com", Role: RoleAdmin}
	if err := store.SaveSession(saved, "tok-123"); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	user, token, err := store.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if user == nil {
		t.Fatal("LoadSession returned no user")
	}
	if *user != saved {
		t.Errorf("loaded user = %+v, want %+v", *user, saved)
	}
	if token != "tok-123" {
		t.Errorf("loaded token = %q, want %q", token, "tok-123")
	}
}

func TestLoadSessionEmpty(t *testing.T) {
	store := tempStore(t)

	user, token, err := store.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession on empty store: %v", err)
	}
	if user != nil || token != "" {
		t.Errorf("empty store returned user=%v token=%q", user, token)
	}
}

func TestSaveSessionOverwrites(t *testing.T) {
	store := tempStore(t)

	if err := store.SaveSession(User{ID: 1, Username: "old"}, "old-token"); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if err := store.SaveSession(User{ID: 2, Username: "new", Role: RoleUser}, "new-token"); err != nil {
		t.Fatalf("SaveSession overwrite: %v", err)
	}

	user, token, err := store.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if user == nil || user.ID != 2 || user.Username != "new" {
		t.Errorf("overwrite not applied, got %+v", user)
	}
	if token != "new-token" {
		t.Errorf("token = %q, want %q", token, "new-token")
	}
}

func TestClearSession(t *testing.T) {
	store := tempStore(t)

	if err := store.SaveSession(User{ID: 3, Username: "carol"}, "tok"); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if err := store.ClearSession(); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}

	user, token, err := store.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession after clear: %v", err)
	}
	if user != nil || token != "" {
		t.Errorf("clear left user=%v token=%q", user, token)
	}

	// Clearing an already-empty store is not an error.
	if err := store.ClearSession(); err != nil {
		t.Fatalf("ClearSession on empty store: %v", err)
	}
}

func TestSessionSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.SaveSession(User{ID: 9, Username: "dave", Role: RoleUser}, "persisted"); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	user, token, err := reopened.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession after reopen: %v", err)
	}
	if user == nil || user.Username != "dave" || token != "persisted" {
		t.Errorf("session not persisted across reopen: user=%v token=%q", user, token)
	}
}
