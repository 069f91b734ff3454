package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/saanpro/saanbot/internal/db"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ContactInfo
	}{
		{
			name: "full contact sentence",
			text: "My name is Asha Rao, phone +91 9876543210, email asha@x.com",
			want: ContactInfo{Name: "Asha Rao", Phone: "+91 9876543210", Email: "asha@x.com"},
		},
		{
			name: "no contact details",
			text: "hello",
			want: ContactInfo{},
		},
		{
			name: "i am cue",
			text: "Hi, I am Ravi Kumar and I want a quote",
			want: ContactInfo{Name: "Ravi Kumar"},
		},
		{
			name: "i'm cue case-insensitive",
			text: "i'm Priya Sharma",
			want: ContactInfo{Name: "Priya Sharma"},
		},
		{
			name: "single capitalized word is not a name",
			text: "I am Ravi",
			want: ContactInfo{},
		},
		{
			name: "bare ten digit phone",
			text: "call me at 9876543210 please",
			want: ContactInfo{Phone: "9876543210"},
		},
		{
			name: "hyphenated country code",
			text: "reach me on +91-9876543210",
			want: ContactInfo{Phone: "+91-9876543210"},
		},
		{
			name: "first phone wins",
			text: "9876543210 or 9123456780",
			want: ContactInfo{Phone: "9876543210"},
		},
		{
			name: "first email wins",
			text: "a@x.com then b@y.org",
			want: ContactInfo{Email: "a@x.com"},
		},
		{
			name: "name cue without capitalized run",
			text: "my name is whatever",
			want: ContactInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if got != tt.want {
				t.Errorf("Extract(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	text := "My name is Asha Rao, phone +91 9876543210"
	if Extract(text) != Extract(text) {
		t.Error("identical input extracted different contacts")
	}
}

func TestShouldCommit(t *testing.T) {
	reachable := ContactInfo{Phone: "9876543210", Email: "a@x.com"}

	tests := []struct {
		name             string
		after            ContactInfo
		changed          bool
		alreadyCommitted bool
		want             bool
	}{
		{"first turn completing contact", reachable, true, false, true},
		{"no change this turn", reachable, false, false, false},
		{"already committed", reachable, true, true, false},
		{"phone only", ContactInfo{Phone: "9876543210"}, true, false, false},
		{"email only", ContactInfo{Email: "a@x.com"}, true, false, false},
		{"name change after commit", ContactInfo{Name: "Asha Rao", Phone: "9876543210", Email: "a@x.com"}, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldCommit(tt.after, tt.changed, tt.alreadyCommitted)
			if got != tt.want {
				t.Errorf("ShouldCommit(%+v, %v, %v) = %v, want %v",
					tt.after, tt.changed, tt.alreadyCommitted, got, tt.want)
			}
		})
	}
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestStoreAppendDefaults(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	saved, err := store.Append(ctx, Lead{
		Email:   "asha@x.com",
		Phone:   "+91 9876543210",
		Message: "I need a quote",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if saved.ID == "" {
		t.Error("expected generated lead ID")
	}
	if saved.Name != "Unknown" {
		t.Errorf("expected default name Unknown, got %q", saved.Name)
	}
	if saved.Source != "chatbot" {
		t.Errorf("expected default source chatbot, got %q", saved.Source)
	}
}

func TestStoreList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	store.Append(ctx, Lead{Name: "Asha Rao", Email: "asha@x.com", Phone: "9876543210"})
	store.Append(ctx, Lead{Name: "Ravi Kumar", Email: "ravi@x.com", Phone: "9123456780"})

	leads, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(leads))
	}
}

func TestRoutes_ListLeads(t *testing.T) {
	store := setupTestStore(t)
	store.Append(context.Background(), Lead{Email: "asha@x.com", Phone: "9876543210"})

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest("GET", "/api/leads", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var leads []Lead
	if err := json.Unmarshal(w.Body.Bytes(), &leads); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(leads) != 1 {
		t.Errorf("expected 1 lead, got %d", len(leads))
	}
}
