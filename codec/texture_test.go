package codec

import (
	"os"
	"path/filepath"
	"testing"

	"vasset/asset"
	"vasset/id"
)

func TestSaveLoadTextureRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rock.vtexture")

	want := &asset.Texture{
		Id:              id.FromPath("rock.png"),
		Width:           256,
		Height:          256,
		Depth:           1,
		MipLevels:       9,
		ArrayLayers:     1,
		IsCubemap:       false,
		GenerateMipmaps: true,
		Dimension:       asset.Dimension2D,
		Format:          asset.FormatRGBA8Unorm,
		FileFormat:      asset.FileFormatRaw,
		Data:            []byte{1, 2, 3, 4, 5, 6, 7, 8},
	}

	if err := SaveTexture(path, want); err != nil {
		t.Fatalf("SaveTexture: %v", err)
	}

	got, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}

	if got.Id != want.Id || got.Width != want.Width || got.Height != want.Height ||
		got.MipLevels != want.MipLevels || got.IsCubemap != want.IsCubemap ||
		got.GenerateMipmaps != want.GenerateMipmaps || got.Dimension != want.Dimension ||
		got.Format != want.Format || got.FileFormat != want.FileFormat {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
	if string(got.Data) != string(want.Data) {
		t.Fatalf("Data mismatch: got %v, want %v", got.Data, want.Data)
	}
}

func TestLoadTextureRejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.vtexture")
	if err := os.WriteFile(path, []byte("not a texture file"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadTexture(path); err == nil {
		t.Fatal("expected an error loading a file with the wrong magic")
	}
}

func TestCubemapValidation(t *testing.T) {
	bad := &asset.Texture{
		Dimension:   asset.Dimension2D,
		IsCubemap:   true,
		ArrayLayers: 4,
		Height:      1,
		Depth:       1,
	}
	if err := bad.Validate(); err == nil {
		t.Fatal("cubemap with ArrayLayers not a multiple of 6 should fail validation")
	}
}
