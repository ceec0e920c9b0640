package project

import (
	"path/filepath"
	"testing"

	"github.com/opencoil/coilwinder/internal/model"
)

func TestSaveAndLoadCustomWires(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wires.json")

	wires := []model.Wire{
		model.NewRoundWire("0.50 mm", 0.50, 0.540),
		model.NewFoilWire("foil 0.15", 0.15, 12.0),
	}
	if err := SaveCustomWires(path, wires); err != nil {
		t.Fatalf("SaveCustomWires failed: %v", err)
	}

	loaded, err := LoadCustomWires(path)
	if err != nil {
		t.Fatalf("LoadCustomWires failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 wires, got %d", len(loaded))
	}
	if loaded[0].Name != "0.50 mm" || loaded[0].Type != model.WireRound {
		t.Errorf("unexpected first wire: %+v", loaded[0])
	}

	d, err := loaded[0].OuterDiameter.Resolve()
	if err != nil || d != 0.540 {
		t.Errorf("outer diameter did not survive the round trip: %f (err %v)", d, err)
	}
}

func TestLoadCustomWiresMissingFile(t *testing.T) {
	wires, err := LoadCustomWires(filepath.Join(t.TempDir(), "wires.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if len(wires) != 0 {
		t.Errorf("expected empty store, got %d wires", len(wires))
	}
}

func TestAddCustomWires(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wires.json")

	if err := AddCustomWires(path, []model.Wire{model.NewRoundWire("a", 0.5, 0.54)}); err != nil {
		t.Fatal(err)
	}
	if err := AddCustomWires(path, []model.Wire{
		model.NewRoundWire("a", 0.5, 0.60), // replaces the stored entry
		model.NewRoundWire("b", 0.8, 0.85),
	}); err != nil {
		t.Fatal(err)
	}

	wires, err := LoadCustomWires(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(wires) != 2 {
		t.Fatalf("expected 2 wires after merge, got %d", len(wires))
	}
	d, _ := wires[0].OuterDiameter.Resolve()
	if d != 0.60 {
		t.Errorf("expected replacement to win, got outer %f", d)
	}
}
