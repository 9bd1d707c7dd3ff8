package store

import (
	"context"
	"testing"

	"github.com/roach88/t0sync/internal/registry"
)

func TestImportRegistry_Default(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	n, err := s.ImportRegistry(ctx, registry.Default())
	if err != nil {
		t.Fatalf("ImportRegistry() failed: %v", err)
	}
	if n != 8 {
		t.Errorf("expected 8 facilities imported, got %d", n)
	}

	// Re-import is an upsert, not a duplicate.
	if _, err := s.ImportRegistry(ctx, registry.Default()); err != nil {
		t.Fatalf("second ImportRegistry() failed: %v", err)
	}

	entries, err := s.Facilities(ctx)
	if err != nil {
		t.Fatalf("Facilities() failed: %v", err)
	}
	want := registry.Default().Entries()
	if len(entries) != len(want) {
		t.Fatalf("expected %d facilities, got %d", len(want), len(entries))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("facility %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestUpsertFacility_Updates(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	e := registry.Entry{FacilityID: "FAC_100", Zone: "Europe/Berlin", NominalOffsetHours: 1, Abbreviation: "CET"}
	if err := s.UpsertFacility(ctx, e); err != nil {
		t.Fatalf("UpsertFacility() failed: %v", err)
	}

	e.Zone = "Europe/Vienna"
	e.Name = "Vienna Plant"
	if err := s.UpsertFacility(ctx, e); err != nil {
		t.Fatalf("second UpsertFacility() failed: %v", err)
	}

	reg, err := s.Registry(ctx)
	if err != nil {
		t.Fatalf("Registry() failed: %v", err)
	}
	got, err := reg.Lookup("FAC_100")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if got.Zone != "Europe/Vienna" || got.Name != "Vienna Plant" {
		t.Errorf("expected updated facility, got %+v", got)
	}
}

func TestUpsertFacility_EmptyID(t *testing.T) {
	s := createTestStore(t)
	if err := s.UpsertFacility(context.Background(), registry.Entry{Zone: "UTC"}); err == nil {
		t.Error("expected error for empty facility id")
	}
}

func TestImportRegistry_ClosedStore(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.db.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if _, err := s.ImportRegistry(ctx, registry.Default()); err == nil {
		t.Error("expected error importing into a closed store")
	}
}

func TestFacility_Found(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, err := s.ImportRegistry(ctx, registry.Default()); err != nil {
		t.Fatalf("ImportRegistry() failed: %v", err)
	}

	got, err := s.Facility(ctx, "FAC_002")
	if err != nil {
		t.Fatalf("Facility() failed: %v", err)
	}
	want, _ := registry.Default().Lookup("FAC_002")
	if got != want {
		t.Errorf("Facility() = %+v, want %+v", got, want)
	}
}

func TestFacility_Unknown(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Facility(context.Background(), "FAC_999")
	if err == nil {
		t.Fatal("expected error for unknown facility")
	}
	if !registry.IsUnknownFacility(err) {
		t.Errorf("expected UnknownFacilityError, got %T: %v", err, err)
	}
}

func TestDeleteFacility(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, err := s.ImportRegistry(ctx, registry.Default()); err != nil {
		t.Fatalf("ImportRegistry() failed: %v", err)
	}

	deleted, err := s.DeleteFacility(ctx, "FAC_003")
	if err != nil {
		t.Fatalf("DeleteFacility() failed: %v", err)
	}
	if !deleted {
		t.Error("expected FAC_003 to be deleted")
	}

	if _, err := s.Facility(ctx, "FAC_003"); !registry.IsUnknownFacility(err) {
		t.Errorf("expected FAC_003 to be gone, got %v", err)
	}

	entries, err := s.Facilities(ctx)
	if err != nil {
		t.Fatalf("Facilities() failed: %v", err)
	}
	if len(entries) != 7 {
		t.Errorf("expected 7 facilities after delete, got %d", len(entries))
	}

	deleted, err = s.DeleteFacility(ctx, "FAC_003")
	if err != nil {
		t.Fatalf("second DeleteFacility() failed: %v", err)
	}
	if deleted {
		t.Error("expected second delete to report nothing removed")
	}
}
