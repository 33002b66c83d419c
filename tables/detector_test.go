package tables

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.MinRows != 2 {
		t.Errorf("DefaultConfig MinRows = %d, want 2", config.MinRows)
	}
	if config.MinCols != 2 {
		t.Errorf("DefaultConfig MinCols = %d, want 2", config.MinCols)
	}
	if config.MinConfidence != 0.5 {
		t.Errorf("DefaultConfig MinConfidence = %f, want 0.5", config.MinConfidence)
	}
	if config.AlignmentTolerance != 2.0 {
		t.Errorf("DefaultConfig AlignmentTolerance = %f, want 2.0", config.AlignmentTolerance)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if reg.detectors == nil {
		t.Error("Registry detectors map should be initialized")
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	reg.Register(NewGeometricDetector())

	got := reg.Get("geometric")
	if got == nil {
		t.Fatal("Get() returned nil for registered detector")
	}
	if got.Name() != "geometric" {
		t.Errorf("Got detector name = %q, want 'geometric'", got.Name())
	}

	if notFound := reg.Get("nonexistent"); notFound != nil {
		t.Error("Get() should return nil for non-existent detector")
	}
}

func TestRegistry_List(t *testing.T) {
	reg := NewRegistry()

	if len(reg.List()) != 0 {
		t.Error("Empty registry should return empty list")
	}

	reg.Register(NewLatticeDetector())
	reg.Register(NewGeometricDetector())

	list := reg.List()
	if len(list) != 2 {
		t.Fatalf("List() returned %d items, want 2", len(list))
	}
	if list[0] != "geometric" || list[1] != "lattice" {
		t.Errorf("List() = %v, want [geometric lattice]", list)
	}
}

func TestGlobalRegistry(t *testing.T) {
	for _, name := range []string{"geometric", "lattice"} {
		d := GetDetector(name)
		if d == nil {
			t.Errorf("Global registry should have %q detector", name)
			continue
		}
		if d.Name() != name {
			t.Errorf("GetDetector(%q).Name() = %q", name, d.Name())
		}
	}

	if n := len(ListDetectors()); n < 2 {
		t.Errorf("ListDetectors() returned %d names, want at least 2", n)
	}
}
