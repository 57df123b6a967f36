package eos

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testDataset() *Dataset {
	return &Dataset{
		MaterialID: 7592,
		Abar:       6.51,
		Zmax:       3.5,
		Dens:       []float64{0.1, 1, 10},
		Idens:      []float64{9.25e21, 9.25e22, 9.25e23},
		Temps:      []float64{0.1, 0.5, 1, 5, 10},
		Tables: map[Variant]*Table{
			VariantTotal: {
				Pres: [][]float64{
					{-1, 2, 3, 4, 5},
					{-1, -2, -3, 4, 5},
					{-1, -2, 3, 4, 5},
				},
				Eint: [][]float64{
					{1, 2, 3, 4, 5},
					{1, 2, 3, 4, 5},
					{1, 2, 3, 4, 5},
				},
			},
		},
	}
}

func TestValidateShapeMismatch(t *testing.T) {
	ds := testDataset()
	ds.Tables[VariantTotal].Pres[1] = []float64{1, 2}
	if err := ds.Validate(); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("want ErrShapeMismatch, got %v", err)
	}

	ds = testDataset()
	ds.Idens = ds.Idens[:1]
	if err := ds.Validate(); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("want ErrShapeMismatch, got %v", err)
	}
}

func TestFieldMissingVariant(t *testing.T) {
	ds := testDataset()
	if _, err := ds.Field(VariantEle, FieldPressure); !errors.Is(err, ErrIncompleteDataset) {
		t.Fatalf("want ErrIncompleteDataset, got %v", err)
	}
}

func TestQuality(t *testing.T) {
	ds := testDataset()
	q, err := ds.Quality(VariantTotal)
	if err != nil {
		t.Fatal(err)
	}
	if q.PresTotal != 15 || q.PresNegative != 6 {
		t.Errorf("pressure quality = %d/%d negative, want 6/15", q.PresNegative, q.PresTotal)
	}
	if q.EintNegative != 0 {
		t.Errorf("eint negative = %d, want 0", q.EintNegative)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ds.json")
	data := `{
		"material_id": 7592,
		"abar": 6.51,
		"dens": [0.1, 1, 10],
		"idens": [9.25e21, 9.25e22, 9.25e23],
		"temps": [0.1, 0.5, 1, 5, 10],
		"tables": {
			"total": {
				"pres": [[-1,2,3,4,5],[-1,-2,-3,4,5],[-1,-2,3,4,5]],
				"eint": [[1,2,3,4,5],[1,2,3,4,5],[1,2,3,4,5]]
			}
		}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	ds, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if ds.ND() != 3 || ds.NT() != 5 {
		t.Fatalf("grid = %dx%d, want 3x5", ds.ND(), ds.NT())
	}
	if ds.Idens[2] != 9.25e23 {
		t.Errorf("idens[2] = %v", ds.Idens[2])
	}
	info := ds.MaterialInfo()
	if len(info.AvailableTypes) != 1 || info.AvailableTypes[0] != "total" {
		t.Errorf("available types = %v", info.AvailableTypes)
	}
}

func TestLoadRejectsNonMonotonicAxis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	data := `{
		"material_id": 1,
		"dens": [1, 1],
		"idens": [1, 2],
		"temps": [0.1, 0.5],
		"tables": {"total": {"pres": [[1,1],[1,1]]}}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("want ErrShapeMismatch, got %v", err)
	}
}

// 轴前部的占位零是上游格式的常态，加载不能拒绝，
// 单调性只约束有效段（> 1e-10）
func TestLoadAcceptsPlaceholderZeroAxes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "padded.json")
	data := `{
		"material_id": 2,
		"dens": [0, 0, 0.1, 1, 10],
		"idens": [0, 0, 9.25e21, 9.25e22, 9.25e23],
		"temps": [0, 0.1, 0.5],
		"tables": {"total": {"pres": [[1,1,1],[1,1,1],[1,1,1],[1,1,1],[1,1,1]]}}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	ds, err := Load(path)
	if err != nil {
		t.Fatalf("padded axes must load, got %v", err)
	}
	if ds.ND() != 5 || ds.NT() != 3 {
		t.Fatalf("grid = %dx%d, want 5x3", ds.ND(), ds.NT())
	}

	// 有效段内的倒序仍然要拒绝
	bad := filepath.Join(t.TempDir(), "bad.json")
	data = `{
		"material_id": 2,
		"dens": [0, 0, 1, 0.1],
		"idens": [0, 0, 1e21, 2e21],
		"temps": [0.1, 0.5],
		"tables": {"total": {"pres": [[1,1],[1,1],[1,1],[1,1]]}}
	}`
	if err := os.WriteFile(bad, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("want ErrShapeMismatch, got %v", err)
	}
}

func TestSuggestConvertParams(t *testing.T) {
	ds := testDataset()
	s := ds.SuggestConvertParams()
	if s.Znum != "1,6" || s.Xfracs != "0.5,0.5" {
		t.Errorf("suggestion = %s / %s, want 1,6 / 0.5,0.5", s.Znum, s.Xfracs)
	}
	ds.Zmax = 1.0
	if s := ds.SuggestConvertParams(); s.Znum != "1" {
		t.Errorf("hydrogen-like suggestion = %s, want 1", s.Znum)
	}
	ds.Zmax = 6.0
	if s := ds.SuggestConvertParams(); s.Znum != "6" {
		t.Errorf("medium-Z suggestion = %s, want 6", s.Znum)
	}
}
