package raster

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a small PNG into the test temp dir and returns its path.
func writeTestPNG(t *testing.T, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 7), uint8(y * 7), 0, 255})
		}
	}
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create temp png: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode temp png: %v", err)
	}
	return path
}

func TestImageCache_LoadAndCache(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPNG(t, "a.png", 12, 8)

	img1, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img1.Bounds().Dx() != 12 || img1.Bounds().Dy() != 8 {
		t.Errorf("bounds: got %v, want 12x8", img1.Bounds())
	}

	// Second load must hit the cache and return the identical instance.
	img2, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load should return the cached instance")
	}
}

func TestImageCache_MissingFile(t *testing.T) {
	cache := NewImageCache()
	if _, err := cache.Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("loading a missing file should fail")
	}
}

func TestImageCache_EvictAndClear(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPNG(t, "b.png", 4, 4)

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Evict(path)
	cache.Evict("never-loaded") // no-op

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("reload after Evict failed: %v", err)
	}

	cache.Clear()
	if _, err := cache.Load(path); err != nil {
		t.Fatalf("reload after Clear failed: %v", err)
	}
}

func TestLoadFileInfo(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPNG(t, "info.png", 20, 10)

	info, err := LoadFileInfo(cache, path)
	if err != nil {
		t.Fatalf("LoadFileInfo failed: %v", err)
	}
	if info.Width != 20 || info.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 20x10", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %q, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("file size: got %d, want > 0", info.FileSizeBytes)
	}
}
