package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "vasset.toml"))
	if err != nil {
		t.Fatalf("Load on a missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverlaysOnDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vasset.toml")
	contents := `
asset_root = "assets"
zstd_level = 9

[texture]
generate_mipmaps = true
quality_level = 200

[mesh]
generate_meshlets = true
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AssetRoot != "assets" || cfg.ZstdLevel != 9 {
		t.Errorf("top-level overlay failed: %+v", cfg)
	}
	if !cfg.Texture.GenerateMipmaps || cfg.Texture.QualityLevel != 200 {
		t.Errorf("texture overlay failed: %+v", cfg.Texture)
	}
	if cfg.Texture.CompressionLevel != Default().Texture.CompressionLevel {
		t.Errorf("unset field should keep its default: got %d", cfg.Texture.CompressionLevel)
	}
	if !cfg.Mesh.GenerateMeshlets {
		t.Error("mesh overlay failed")
	}
}
