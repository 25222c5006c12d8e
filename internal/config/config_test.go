package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if len(cfg.Components) == 0 {
		t.Fatal("expected at least one component")
	}
	if cfg.Components[0].Model != "degrate" {
		t.Errorf("expected degrate model, got %s", cfg.Components[0].Model)
	}
	if len(cfg.Inventory) == 0 || cfg.Inventory[0].Isotope != 92235 {
		t.Errorf("expected u235 inventory, got %+v", cfg.Inventory)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("clay-column")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Components) != 3 {
		t.Errorf("expected 3 components, got %d", len(cfg.Components))
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPresetReturnsCopy(t *testing.T) {
	a := GetPreset("clay-column")
	a.Components[0].DegradationRate = 0.99
	a.Duration = 1

	b := GetPreset("clay-column")
	if b.Components[0].DegradationRate == 0.99 || b.Duration == 1 {
		t.Error("mutating a preset copy must not affect later lookups")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for _, n := range names {
		if GetPreset(n) == nil {
			t.Errorf("listed preset %q does not resolve", n)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	orig := GetPreset("clay-column")

	if err := Save(path, orig); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Name != orig.Name || loaded.Duration != orig.Duration {
		t.Errorf("round trip lost scalars: %+v", loaded)
	}
	if len(loaded.Components) != len(orig.Components) {
		t.Fatalf("round trip lost components")
	}
	if loaded.Components[1].AdvectiveVelocity != orig.Components[1].AdvectiveVelocity {
		t.Error("round trip lost component parameters")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTableFallsBackToBuiltin(t *testing.T) {
	cfg := DefaultConfig()
	table := cfg.Table()
	if _, err := table.D(92); err != nil {
		t.Errorf("builtin fallback should cover uranium: %v", err)
	}
}
