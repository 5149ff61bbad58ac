package game

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
)

// TestNewResourceManager verifies that all caches start empty.
func TestNewResourceManager(t *testing.T) {
	rm := NewResourceManager()
	if rm == nil {
		t.Fatal("NewResourceManager() returned nil")
	}
	if len(rm.fontDataCache) != 0 || len(rm.fontFaceCache) != 0 || len(rm.fontSourceCache) != 0 {
		t.Error("Expected empty caches")
	}
}

// TestLoadFontData_Builtin verifies that built-in names resolve without disk access.
func TestLoadFontData_Builtin(t *testing.T) {
	rm := NewResourceManager()

	data, err := rm.LoadFontData(FontBold)
	if err != nil {
		t.Fatalf("Failed to load built-in font: %v", err)
	}
	if !bytes.Equal(data, gobold.TTF) {
		t.Error("Expected gobold data for FontBold")
	}
}

// TestLoadFontData_File verifies loading from disk and caching.
func TestLoadFontData_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.ttf")
	if err := os.WriteFile(path, gobold.TTF, 0o644); err != nil {
		t.Fatalf("Failed to write test font: %v", err)
	}

	rm := NewResourceManager()
	first, err := rm.LoadFontData(path)
	if err != nil {
		t.Fatalf("Failed to load font file: %v", err)
	}

	// 删除文件后仍应命中缓存
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	second, err := rm.LoadFontData(path)
	if err != nil {
		t.Fatalf("Expected cached font data, got error: %v", err)
	}
	if len(first) != len(second) {
		t.Error("Cached font data differs")
	}
}

// TestLoadFontData_FileNotFound verifies the error path.
func TestLoadFontData_FileNotFound(t *testing.T) {
	rm := NewResourceManager()
	if _, err := rm.LoadFontData("nonexistent/font.ttf"); err == nil {
		t.Error("Expected error for missing font file")
	}
}

// TestLoadFont_CachingMechanism verifies faces are cached per name and size.
func TestLoadFont_CachingMechanism(t *testing.T) {
	rm := NewResourceManager()

	face1, err := rm.LoadFont(FontRegular, 24)
	if err != nil {
		t.Fatalf("Failed to load font: %v", err)
	}
	face2, err := rm.LoadFont(FontRegular, 24)
	if err != nil {
		t.Fatalf("Failed to load font: %v", err)
	}
	if face1 != face2 {
		t.Error("Expected the cached face to be returned")
	}

	face3, err := rm.LoadFont(FontRegular, 32)
	if err != nil {
		t.Fatalf("Failed to load font: %v", err)
	}
	if face3 == face1 {
		t.Error("Different sizes must yield different faces")
	}
	if face3.Source != face1.Source {
		t.Error("Faces of the same font should share a source")
	}
}

// TestLoadFont_InvalidData verifies that corrupt font files are rejected.
func TestLoadFont_InvalidData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}

	rm := NewResourceManager()
	if _, err := rm.LoadFont(path, 16); err == nil {
		t.Error("Expected error for invalid font data")
	}
}
