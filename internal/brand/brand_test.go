package brand

import (
	"strings"
	"testing"
)

func TestBrandLoaded(t *testing.T) {
	if Name == "" || BinaryName == "" || Version == "" {
		t.Fatalf("brand not initialized: Name=%q BinaryName=%q Version=%q", Name, BinaryName, Version)
	}
	if LowerName != strings.ToLower(LowerName) {
		t.Errorf("LowerName must be lowercase, got %q", LowerName)
	}
	if PowercfgBinary == "" {
		t.Error("PowercfgBinary must be set")
	}
}
