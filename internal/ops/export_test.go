package ops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ndelgado/abasto/internal/catalog"
	"github.com/ndelgado/abasto/internal/errors"
)

func TestExportJSON_FiltersByNameSubstring(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos_alimento.json")

	out, err := ExportJSON(testRecords(), ExportInput{Path: path, Filter: "Alimento"})
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	if out.Count != 3 {
		t.Errorf("Count = %d, want 3", out.Count)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export failed: %v", err)
	}
	if strings.Contains(string(data), "Shampoo") {
		t.Error("non-matching record leaked into export")
	}
	if !strings.Contains(string(data), "Alimento Perro") {
		t.Error("matching record missing from export")
	}
}

func TestExportJSON_NoMatchesWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos_alimento.json")

	out, err := ExportJSON(testRecords(), ExportInput{Path: path, Filter: "Ferreteria"})
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	if out.Count != 0 {
		t.Errorf("Count = %d, want 0", out.Count)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file should be written when nothing matches")
	}
}

func TestExportJSON_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos_alimento.json")
	if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatalf("seed write failed: %v", err)
	}

	if _, err := ExportJSON(testRecords(), ExportInput{Path: path, Filter: "Alimento"}); err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "stale") {
		t.Error("export did not overwrite existing artifact")
	}
}

func TestImportJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos_alimento.json")
	records := testRecords()

	exported, err := ExportJSON(records, ExportInput{Path: path, Filter: "Alimento"})
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	imported, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	if imported.Count != exported.Count {
		t.Fatalf("imported %d records, exported %d", imported.Count, exported.Count)
	}

	// Every imported record matches its exported original field for field.
	byID := make(map[string]*catalog.Record)
	for _, r := range records {
		byID[r.ID] = r
	}
	for _, r := range imported.Items {
		orig, ok := byID[r.ID]
		if !ok {
			t.Errorf("imported unknown record %q", r.ID)
			continue
		}
		if *r != *orig {
			t.Errorf("record %s = %+v, want %+v", r.ID, r, orig)
		}
	}
}

func TestImportJSON_SingleRecordRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos_alimento.json")
	records := []*catalog.Record{
		{ID: "1", Name: "Alimento A", Brand: "Acme", Price: 10, Features: "x~y"},
	}

	if _, err := ExportJSON(records, ExportInput{Path: path, Filter: "Alimento"}); err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	imported, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if len(imported.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(imported.Items))
	}
	if *imported.Items[0] != *records[0] {
		t.Errorf("round-trip mismatch: %+v != %+v", imported.Items[0], records[0])
	}
}

func TestImportJSON_ArtifactMissing(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "productos_alimento.json"))
	if !errors.Is(err, errors.ErrArtifactMissing) {
		t.Errorf("ImportJSON should return ErrArtifactMissing, got: %v", err)
	}
}

func TestImportJSON_CorruptArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productos_alimento.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatalf("seed write failed: %v", err)
	}

	_, err := ImportJSON(path)
	if !errors.Is(err, errors.ErrInternal) {
		t.Errorf("ImportJSON should return ErrInternal, got: %v", err)
	}
}
