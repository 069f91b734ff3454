package knowledge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/saanpro/saanbot/internal/db"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestRenderEmptySnapshotFallbacks(t *testing.T) {
	blocks := Render(NewSnapshot(nil))

	if !strings.Contains(blocks.Company, "About: "+FallbackNotAvailable) {
		t.Errorf("company block missing about fallback:\n%s", blocks.Company)
	}
	if !strings.Contains(blocks.Company, "Phone: "+FallbackNotAvailable) {
		t.Errorf("company block missing phone fallback:\n%s", blocks.Company)
	}
	if blocks.Services != FallbackNoneListed {
		t.Errorf("services: got %q, want %q", blocks.Services, FallbackNoneListed)
	}
	if blocks.Products != FallbackNoProducts {
		t.Errorf("products: got %q, want %q", blocks.Products, FallbackNoProducts)
	}
	if blocks.Awards != FallbackNoneListed {
		t.Errorf("awards: got %q, want %q", blocks.Awards, FallbackNoneListed)
	}
	if blocks.Brands != FallbackNoneListed {
		t.Errorf("brands: got %q, want %q", blocks.Brands, FallbackNoneListed)
	}
	if !strings.Contains(blocks.Contact, DefaultContactName) {
		t.Errorf("contact block missing default contact:\n%s", blocks.Contact)
	}
	if !strings.Contains(blocks.Contact, DefaultContactEmail) {
		t.Errorf("contact block missing default email:\n%s", blocks.Contact)
	}
}

func TestRenderServiceLine(t *testing.T) {
	snap := NewSnapshot(map[string][]Record{
		CollectionServices: {
			{"name": "AV Install", "description": "Audio-visual setup"},
		},
	})

	blocks := Render(snap)
	if blocks.Services != "- AV Install (Audio-visual setup)" {
		t.Errorf("services block: got %q", blocks.Services)
	}
}

func TestRenderServiceMissingDescription(t *testing.T) {
	snap := NewSnapshot(map[string][]Record{
		CollectionServices: {{"name": "Calibration"}},
	})

	blocks := Render(snap)
	if blocks.Services != "- Calibration ("+FallbackNoDesc+")" {
		t.Errorf("services block: got %q", blocks.Services)
	}
}

func TestRenderProductLine(t *testing.T) {
	snap := NewSnapshot(map[string][]Record{
		CollectionProducts: {
			{"name": "ProjectorX", "brand": "Epson", "category": "Projector", "price": 45000, "notes": "4K"},
		},
	})

	blocks := Render(snap)
	want := "- ProjectorX | Brand: Epson | Category: Projector | ₹45000 | Notes: 4K"
	if blocks.Products != want {
		t.Errorf("products block:\n got %q\nwant %q", blocks.Products, want)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	snap := NewSnapshot(map[string][]Record{
		CollectionCompanyInfo: {{"about": "AV integrator", "founded": 2008}},
		CollectionServices:    {{"name": "AV Install", "description": "Audio-visual setup"}},
		CollectionAwards:      {{"name": "Best Integrator 2023"}},
	})

	first := Render(snap)
	second := Render(snap)
	if first != second {
		t.Error("identical snapshots rendered different blocks")
	}
}

func TestRenderCompanyFields(t *testing.T) {
	snap := NewSnapshot(map[string][]Record{
		CollectionCompanyInfo: {{
			"about":        "Protocol experts",
			"founded":      2008,
			"headquarters": "Bengaluru",
			"contact_person": map[string]any{
				"name":  "Asha Rao",
				"email": "asha@saanpro.com",
			},
		}},
	})

	blocks := Render(snap)
	if !strings.Contains(blocks.Company, "Founded: 2008") {
		t.Errorf("company block missing founded year:\n%s", blocks.Company)
	}
	if !strings.Contains(blocks.Company, "Vision: "+FallbackNotAvailable) {
		t.Errorf("company block missing vision fallback:\n%s", blocks.Company)
	}
	if !strings.Contains(blocks.Contact, "Contact Person: Asha Rao") {
		t.Errorf("contact block should use nested contact_person:\n%s", blocks.Contact)
	}
	if !strings.Contains(blocks.Contact, "Phone: "+DefaultContactPhone) {
		t.Errorf("contact block missing default phone:\n%s", blocks.Contact)
	}
}

func TestNormalizeScalar(t *testing.T) {
	rec := Normalize("Best AV Integrator 2023")
	if rec.Str("name") != "Best AV Integrator 2023" {
		t.Errorf("expected scalar normalized to name field, got %v", rec)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	records := []Record{
		{"name": "AV Install", "description": "Audio-visual setup"},
		{"name": "Maintenance"},
	}
	if err := store.ReplaceCollection(ctx, CollectionServices, records); err != nil {
		t.Fatalf("ReplaceCollection: %v", err)
	}

	got := store.FetchCollection(ctx, CollectionServices)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Str("name") != "AV Install" || got[1].Str("name") != "Maintenance" {
		t.Errorf("records out of order: %v", got)
	}
}

func TestStoreUnknownCollection(t *testing.T) {
	store := setupTestStore(t)

	err := store.ReplaceCollection(context.Background(), "secrets", []Record{{"a": "b"}})
	if err == nil {
		t.Error("expected error for unknown collection")
	}

	if got := store.FetchCollection(context.Background(), "secrets"); len(got) != 0 {
		t.Errorf("unknown collection should read empty, got %v", got)
	}
}

func TestStoreReplaceIsAtomicSwap(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	store.ReplaceCollection(ctx, CollectionBrands, []Record{{"name": "Old"}})
	store.ReplaceCollection(ctx, CollectionBrands, []Record{{"name": "New"}})

	got := store.FetchCollection(ctx, CollectionBrands)
	if len(got) != 1 || got[0].Str("name") != "New" {
		t.Errorf("expected replaced collection [New], got %v", got)
	}
}

func TestSnapshotSources(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	store.ReplaceCollection(ctx, CollectionServices, []Record{{"name": "AV Install"}})
	store.ReplaceCollection(ctx, CollectionBrands, []Record{{"name": "Epson"}})

	snap := store.Snapshot(ctx)
	sources := snap.Sources()
	if len(sources) != 2 || sources[0] != CollectionServices || sources[1] != CollectionBrands {
		t.Errorf("expected [services brands], got %v", sources)
	}
}

func TestSeedFromFile(t *testing.T) {
	store := setupTestStore(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "knowledge.yml")

	seed := `company_info:
  - about: Protocol experts
    founded: 2008
services:
  - name: AV Install
    description: Audio-visual setup
awards:
  - Best AV Integrator 2023
  - name: Customer Choice 2024
`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("writing seed: %v", err)
	}

	counts, err := SeedFromFile(context.Background(), store, path)
	if err != nil {
		t.Fatalf("SeedFromFile: %v", err)
	}
	if counts[CollectionAwards] != 2 {
		t.Errorf("expected 2 awards, got %d", counts[CollectionAwards])
	}

	blocks := Render(store.Snapshot(context.Background()))
	if !strings.Contains(blocks.Awards, "- Best AV Integrator 2023") {
		t.Errorf("awards block missing normalized scalar entry:\n%s", blocks.Awards)
	}
	if blocks.Services != "- AV Install (Audio-visual setup)" {
		t.Errorf("services block: got %q", blocks.Services)
	}
}

func TestSeedFromFileUnknownCollection(t *testing.T) {
	store := setupTestStore(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	os.WriteFile(path, []byte("secrets:\n  - name: nope\n"), 0o644)

	if _, err := SeedFromFile(context.Background(), store, path); err == nil {
		t.Error("expected error for unknown collection in seed file")
	}
}

func TestRoutes_GetCollection(t *testing.T) {
	store := setupTestStore(t)
	store.ReplaceCollection(context.Background(), CollectionServices,
		[]Record{{"name": "AV Install"}})

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest("GET", "/api/knowledge/services", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var records []Record
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record, got %d", len(records))
	}
}

func TestRoutes_ReplaceCollection(t *testing.T) {
	store := setupTestStore(t)

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	body := strings.NewReader(`[{"name":"Epson"},{"name":"Sony"}]`)
	req := httptest.NewRequest("PUT", "/api/knowledge/brands", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	got := store.FetchCollection(context.Background(), CollectionBrands)
	if len(got) != 2 {
		t.Errorf("expected 2 brands persisted, got %d", len(got))
	}
}

func TestRoutes_ReplaceUnknownCollection(t *testing.T) {
	store := setupTestStore(t)

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest("PUT", "/api/knowledge/secrets", strings.NewReader(`[]`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
