package codec

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vasset/asset"
	"vasset/asseterr"
	"vasset/id"
)

const validVimport = `# generated by vasset
[vimport]
version=1
importer="texture"
uid="9c0ffee1-dead-beef-0123-456789abcdef"

[source]
file='tex/awesome.png'

[output]
file="imported/texture/awesome"

; trailing comment style also accepted
[params]
generate_mipmaps=false
flip_y=true
`

func writeVimport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "awesome.png.vimport")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadVimportParsesAllSections(t *testing.T) {
	desc, err := LoadVimport(writeVimport(t, validVimport))
	if err != nil {
		t.Fatalf("LoadVimport: %v", err)
	}
	if desc.Version != 1 || desc.Importer != "texture" {
		t.Errorf("header = v%d %q, want v1 texture", desc.Version, desc.Importer)
	}
	want, _ := id.Parse("9c0ffee1-dead-beef-0123-456789abcdef")
	if desc.Uid != want {
		t.Errorf("uid = %s, want %s", desc.Uid, want)
	}
	if desc.Source != "tex/awesome.png" || desc.Output != "imported/texture/awesome" {
		t.Errorf("source/output = %q/%q", desc.Source, desc.Output)
	}
	if desc.Params["generate_mipmaps"] != "false" || desc.Params["flip_y"] != "true" {
		t.Errorf("params = %v", desc.Params)
	}
}

func TestLoadVimportRejectsMissingFields(t *testing.T) {
	cases := map[string]string{
		"no importer": `[vimport]
version=1
uid="9c0ffee1-dead-beef-0123-456789abcdef"
[source]
file=a.png
[output]
file=imported/texture/a
`,
		"no uid": `[vimport]
version=1
importer=texture
[source]
file=a.png
[output]
file=imported/texture/a
`,
		"nil uid": `[vimport]
version=1
importer=texture
uid="00000000-0000-0000-0000-000000000000"
[source]
file=a.png
[output]
file=imported/texture/a
`,
		"no output": `[vimport]
version=1
importer=texture
uid="9c0ffee1-dead-beef-0123-456789abcdef"
[source]
file=a.png
`,
		"no source": `[vimport]
version=1
importer=texture
uid="9c0ffee1-dead-beef-0123-456789abcdef"
[output]
file=imported/texture/a
`,
	}
	for label, content := range cases {
		_, err := LoadVimport(writeVimport(t, content))
		if !errors.Is(err, asseterr.ErrInvalidImportFile) {
			t.Errorf("%s: err = %v, want InvalidImportFile", label, err)
		}
	}
}

func TestSaveLoadVimportRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.gltf.vimport")
	want := &asset.ImportDescriptor{
		Version:  asset.CurrentImportVersion,
		Importer: "mesh",
		Uid:      id.FromPath("imported/mesh/helmet"),
		Source:   "models/helmet.gltf",
		Output:   "imported/mesh/helmet",
		Params:   map[string]string{"generate_meshlets": "true"},
	}
	if err := SaveVimport(path, want); err != nil {
		t.Fatalf("SaveVimport: %v", err)
	}
	got, err := LoadVimport(path)
	if err != nil {
		t.Fatalf("LoadVimport: %v", err)
	}
	if got.Version != want.Version || got.Importer != want.Importer || got.Uid != want.Uid ||
		got.Source != want.Source || got.Output != want.Output {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
	if got.Params["generate_meshlets"] != "true" {
		t.Errorf("params = %v", got.Params)
	}
}
