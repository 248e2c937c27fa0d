package codec

import (
	"os"
	"path/filepath"
	"testing"

	"vasset/asset"
	"vasset/core"
	"vasset/id"
)

func TestSaveLoadMaterialRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rock.vmaterial")

	want := &asset.Material{
		Id:   id.FromPath("rock_mat"),
		Name: "rock_mat",
		Type: asset.MaterialPBRMetallicRoughness,
		PBR: asset.PBRMetallicRoughness{
			BaseColor:       core.Color{R: 0.8, G: 0.1, B: 0.1, A: 1},
			AlphaCutoff:     0.5,
			AlphaMode:       asset.AlphaMask,
			Opacity:         1,
			BlendMode:       asset.BlendAlpha,
			MetallicFactor:  0.2,
			RoughnessFactor: 0.6,
			EmissiveColor:   core.Color{R: 0, G: 0, B: 0, A: 1},
			AmbientColor:    core.Color{R: 0, G: 0, B: 0, A: 1},
			IOR:             1.5,
			DoubleSided:     true,

			BaseColorTexture:         id.FromPath("rock_basecolor.png"),
			AlphaTexture:             id.Nil,
			MetallicTexture:          id.Nil,
			RoughnessTexture:         id.Nil,
			SpecularTexture:          id.Nil,
			NormalTexture:            id.FromPath("rock_normal.png"),
			AOTexture:                id.Nil,
			EmissiveTexture:          id.Nil,
			MetallicRoughnessTexture: id.FromPath("rock_mr.png"),
		},
	}

	if err := SaveMaterial(path, want); err != nil {
		t.Fatalf("SaveMaterial: %v", err)
	}

	got, err := LoadMaterial(path)
	if err != nil {
		t.Fatalf("LoadMaterial: %v", err)
	}

	if *got != *want {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLoadMaterialRejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.vmaterial")
	if err := os.WriteFile(path, []byte("not a material file"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadMaterial(path); err == nil {
		t.Fatal("expected an error loading a file with the wrong magic")
	}
}
