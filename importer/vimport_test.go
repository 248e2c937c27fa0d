package importer

import (
	"path/filepath"
	"testing"

	"vasset/codec"
	"vasset/id"
	"vasset/registry"
)

func TestWriteVimportSidecarRoundTrips(t *testing.T) {
	dir := t.TempDir()
	reg := registry.New()
	reg.SetAssetRoot(dir)

	sourcePath := filepath.Join(dir, "rock.png")
	assetID := id.FromPath(sourcePath)
	params := map[string]string{
		"flip_y":           "true",
		"generate_mipmaps": "false",
	}

	if err := writeVimportSidecar(reg, sourcePath, assetID, "texture", "imported/rock.vtexture", params); err != nil {
		t.Fatalf("writeVimportSidecar: %v", err)
	}

	desc, err := codec.LoadVimport(sourcePath + ".vimport")
	if err != nil {
		t.Fatalf("LoadVimport: %v", err)
	}

	if desc.Importer != "texture" {
		t.Errorf("Importer: got %q, want %q", desc.Importer, "texture")
	}
	if desc.Uid != assetID {
		t.Errorf("Uid: got %v, want %v", desc.Uid, assetID)
	}
	if desc.Output != "imported/rock.vtexture" {
		t.Errorf("Output: got %q, want %q", desc.Output, "imported/rock.vtexture")
	}
	if desc.Params["flip_y"] != "true" || desc.Params["generate_mipmaps"] != "false" {
		t.Errorf("Params did not round-trip: %+v", desc.Params)
	}
}
