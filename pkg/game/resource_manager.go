package game

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Built-in font names (内置字体)
const (
	FontRegular = "builtin:regular"
	FontBold    = "builtin:bold"
)

// builtinFonts 内置字体数据
var builtinFonts = map[string][]byte{
	FontRegular: goregular.TTF,
	FontBold:    gobold.TTF,
}

// ResourceManager is responsible for centralized management of font resources.
// It provides loading and caching mechanisms for font data and text faces,
// ensuring that fonts are parsed only once and reused throughout the app.
//
// Fonts are addressed by name: either one of the built-in names (FontRegular,
// FontBold) or a file path.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The internal caches use standard Go maps.
// For the current single-threaded game loop, no synchronization is needed.
//
// Usage:
//
//	rm := NewResourceManager()
//	face, err := rm.LoadFont(FontRegular, 24)
//	if err != nil {
//	    log.Printf("Failed to load font: %v", err)
//	}
type ResourceManager struct {
	fontDataCache   map[string][]byte                 // Raw font bytes: name -> data
	fontSourceCache map[string]*text.GoTextFaceSource // Parsed sources: name -> source
	fontFaceCache   map[string]*text.GoTextFace       // Cache for Ebitengine v2 text faces
}

// NewResourceManager creates and initializes a new ResourceManager instance.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		fontDataCache:   make(map[string][]byte),
		fontSourceCache: make(map[string]*text.GoTextFaceSource),
		fontFaceCache:   make(map[string]*text.GoTextFace),
	}
}

// LoadFontData returns the raw bytes of a font, reading it on first use.
//
// Parameters:
//   - name: A built-in font name or a file path to a .ttf/.otf file.
//
// Returns:
//   - The font bytes (shared, callers must not modify them).
//   - An error if the file cannot be read.
func (rm *ResourceManager) LoadFontData(name string) ([]byte, error) {
	if data, exists := rm.fontDataCache[name]; exists {
		return data, nil
	}

	data, builtin := builtinFonts[name]
	if !builtin {
		var err error
		data, err = os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", name, err)
		}
	}

	rm.fontDataCache[name] = data
	return data, nil
}

// LoadFont loads a TrueType/OpenType font and creates a text face with the given size.
// The font face is cached for future use with a cache key combining name and size.
//
// Parameters:
//   - name: A built-in font name or a file path.
//   - size: The font size in pixels.
//
// Returns:
//   - A pointer to the text.GoTextFace ready for rendering.
//   - An error if the font cannot be read or parsed.
func (rm *ResourceManager) LoadFont(name string, size float64) (*text.GoTextFace, error) {
	// Create cache key combining name and size
	cacheKey := fmt.Sprintf("%s:%.1f", name, size)

	// Check if the font face is already cached
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, exists := rm.fontSourceCache[name]
	if !exists {
		fontData, err := rm.LoadFontData(name)
		if err != nil {
			return nil, err
		}

		source, err = text.NewGoTextFaceSource(bytes.NewReader(fontData))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source for %s: %w", name, err)
		}
		rm.fontSourceCache[name] = source
	}

	goTextFace := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = goTextFace

	return goTextFace, nil
}
