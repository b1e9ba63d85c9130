package db

import (
	"database/sql"
	"testing"

	"tenderscan/internal/errors"
	"tenderscan/internal/tender"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func sampleTender(id string) *tender.Tender {
	return &tender.Tender{
		TenderID:         id,
		SourceFile:       id + ".txt",
		ProjectName:      "Rural Electrification Phase II",
		Ministry:         "Ministry of Power",
		DeliveryDeadline: "within 60 days",
		Warranty:         "24 months from commissioning",
		Voltage:          "11kV",
		Quantities:       []string{"5000 meters of cable"},
		Standards:        []string{"IS 1554", "IS 7098"},
		ItemDescriptions: []string{"XLPE insulated power cable"},
		TechnicalSpecs:   "Material of conductor: Aluminium\nType of cable: XLPE",
		SpecCount:        2,
		RunID:            "01JF0000000000000000000000",
	}
}

func TestUpsert_InsertAndGet(t *testing.T) {
	database := testDB(t)

	in := sampleTender("RFP-2025-0042")
	if err := Upsert(database, in); err != nil {
		t.Fatal(err)
	}
	if in.CreatedAt == 0 || in.UpdatedAt == 0 {
		t.Error("timestamps not set after Upsert")
	}

	got, err := GetByID(database, "RFP-2025-0042")
	if err != nil {
		t.Fatal(err)
	}
	if got.ProjectName != in.ProjectName {
		t.Errorf("ProjectName = %q, want %q", got.ProjectName, in.ProjectName)
	}
	if got.SpecCount != 2 {
		t.Errorf("SpecCount = %d, want 2", got.SpecCount)
	}
	if got.TechnicalSpecs != in.TechnicalSpecs {
		t.Errorf("TechnicalSpecs = %q", got.TechnicalSpecs)
	}
	if got.Warranty != in.Warranty || got.Voltage != in.Voltage {
		t.Errorf("Warranty/Voltage = %q/%q", got.Warranty, got.Voltage)
	}
	if len(got.Standards) != 2 || got.Standards[0] != "IS 1554" {
		t.Errorf("Standards = %v", got.Standards)
	}
	if len(got.Quantities) != 1 || len(got.ItemDescriptions) != 1 {
		t.Errorf("Quantities = %v, ItemDescriptions = %v", got.Quantities, got.ItemDescriptions)
	}
}

func TestUpsert_LastWriteWins(t *testing.T) {
	database := testDB(t)

	first := sampleTender("TDR-2025-0001")
	if err := Upsert(database, first); err != nil {
		t.Fatal(err)
	}

	second := sampleTender("TDR-2025-0001")
	second.ProjectName = "Substation Upgrade"
	second.SpecCount = 5
	if err := Upsert(database, second); err != nil {
		t.Fatal(err)
	}

	got, err := GetByID(database, "TDR-2025-0001")
	if err != nil {
		t.Fatal(err)
	}
	if got.ProjectName != "Substation Upgrade" {
		t.Errorf("ProjectName = %q, want overwrite to win", got.ProjectName)
	}
	if got.SpecCount != 5 {
		t.Errorf("SpecCount = %d, want 5", got.SpecCount)
	}
	if got.CreatedAt != first.CreatedAt {
		t.Errorf("CreatedAt = %d, want original %d preserved", got.CreatedAt, first.CreatedAt)
	}

	n, err := Count(database)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	database := testDB(t)

	_, err := GetByID(database, "MISSING-2025-0001")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestList(t *testing.T) {
	database := testDB(t)

	ids := []string{"A-2025-001", "B-2025-002", "C-2025-003"}
	for i, id := range ids {
		if err := Upsert(database, sampleTender(id)); err != nil {
			t.Fatal(err)
		}
		// updated_at has second resolution; pin distinct values so the
		// ordering is deterministic.
		if _, err := database.Exec("UPDATE tenders SET updated_at = ? WHERE tender_id = ?", 1000+i, id); err != nil {
			t.Fatal(err)
		}
	}

	got, err := List(database, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].TenderID != "C-2025-003" {
		t.Errorf("first = %q, want most recently updated", got[0].TenderID)
	}

	rest, err := List(database, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 1 || rest[0].TenderID != "A-2025-001" {
		t.Errorf("offset page = %v", rest)
	}
}

func TestDelete(t *testing.T) {
	database := testDB(t)

	if err := Upsert(database, sampleTender("X-2025-009")); err != nil {
		t.Fatal(err)
	}
	if err := Delete(database, "X-2025-009"); err != nil {
		t.Fatal(err)
	}
	if _, err := GetByID(database, "X-2025-009"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err = %v, want NOT_FOUND after delete", err)
	}

	if err := Delete(database, "X-2025-009"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("second delete err = %v, want NOT_FOUND", err)
	}
}

func TestUpsert_EmptyOptionalFields(t *testing.T) {
	database := testDB(t)

	in := &tender.Tender{TenderID: "BARE-2025-001"}
	if err := Upsert(database, in); err != nil {
		t.Fatal(err)
	}

	got, err := GetByID(database, "BARE-2025-001")
	if err != nil {
		t.Fatal(err)
	}
	if got.ProjectName != "" || got.Ministry != "" || got.TechnicalSpecs != "" {
		t.Errorf("optional fields not empty: %+v", got)
	}
	if got.Quantities != nil || got.Standards != nil || got.ItemDescriptions != nil {
		t.Errorf("slice fields not nil: %+v", got)
	}
}
