package profile

import (
	"slices"
	"testing"
)

func TestProfilerStart(t *testing.T) {
	for _, p := range []Profiler{{}, {Mode: "bogus"}} {
		s := p.Start()
		if _, ok := s.(ignore); !ok {
			t.Errorf("Profiler%+v.Start() = %T, want no-op", p, s)
		}

		s.Stop()
	}
}

func TestModes(t *testing.T) {
	modes := Modes()
	if !slices.IsSorted(modes) {
		t.Errorf("Modes() = %v, want sorted", modes)
	}
}
