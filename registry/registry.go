// Package registry implements the asset registry: the durable map
// from an asset's Id to its kind and cooked path, backed by a
// git-friendly tab-separated file.
package registry

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vasset/asset"
	"vasset/asseterr"
	"vasset/id"
)

// Entry is one registry record: an asset's kind and the cooked path
// it was registered under.
type Entry struct {
	Kind asset.Kind
	Path string
}

// Registry maps asset identities to cooked asset locations. It is
// registry-local state, not process-global, so multiple pipelines can
// be driven independently in the same process; callers are
// responsible for serializing mutation themselves — a Registry is not
// internally synchronized for concurrent writers.
type Registry struct {
	assetRoot      string
	importedFolder string
	entries        map[id.Id]Entry
}

// New returns an empty registry with the default imported-folder name
// "imported".
func New() *Registry {
	return &Registry{importedFolder: "imported", entries: map[id.Id]Entry{}}
}

func (r *Registry) SetAssetRoot(p string)          { r.assetRoot = p }
func (r *Registry) SetImportedFolderName(n string) { r.importedFolder = n }
func (r *Registry) AssetRoot() string              { return r.assetRoot }

// Register inserts or overwrites the entry for id.
func (r *Registry) Register(assetID id.Id, path string, kind asset.Kind) error {
	r.entries[assetID] = Entry{Kind: kind, Path: path}
	return nil
}

// Update changes an existing entry's path, failing with NotFound if
// the id is unregistered.
func (r *Registry) Update(assetID id.Id, newPath string) error {
	e, ok := r.entries[assetID]
	if !ok {
		return asseterr.New(asseterr.NotFound, assetID.String())
	}
	e.Path = newPath
	r.entries[assetID] = e
	return nil
}

// Unregister removes an entry, failing with NotFound if it wasn't
// present.
func (r *Registry) Unregister(assetID id.Id) error {
	if _, ok := r.entries[assetID]; !ok {
		return asseterr.New(asseterr.NotFound, assetID.String())
	}
	delete(r.entries, assetID)
	return nil
}

// Lookup returns the entry for id and whether it was present.
func (r *Registry) Lookup(assetID id.Id) (Entry, bool) {
	e, ok := r.entries[assetID]
	return e, ok
}

// Entries returns a snapshot of every registered (id, entry) pair, for
// callers that need to enumerate the registry (e.g. a `pack`
// subcommand gathering every cooked asset into a PKG archive).
func (r *Registry) Entries() map[id.Id]Entry {
	out := make(map[id.Id]Entry, len(r.entries))
	for k, v := range r.entries {
		out[k] = v
	}
	return out
}

// Save writes the registry to file in the tab-separated persistence
// format: `<uuidCanonical>\t<kindName>\t<path>\n`.
func (r *Registry) Save(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return asseterr.Wrap(asseterr.IOError, file, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# vasset registry\n")
	for assetID, e := range r.entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", assetID.String(), e.Kind.String(), e.Path)
	}
	return w.Flush()
}

// Load reads file, replacing the in-memory entries. It is lenient:
// comment lines and malformed records are skipped rather than failing
// the whole load.
func (r *Registry) Load(file string) error {
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return asseterr.Wrap(asseterr.NotFound, file, err)
		}
		return asseterr.Wrap(asseterr.IOError, file, err)
	}
	defer f.Close()

	entries := map[id.Id]Entry{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			continue
		}
		assetID, err := id.Parse(fields[0])
		if err != nil {
			continue
		}
		kind := asset.ParseKind(fields[1])
		if kind == asset.KindUnknown && fields[1] != "unknown" {
			continue
		}
		entries[assetID] = Entry{Kind: kind, Path: fields[2]}
	}
	if err := sc.Err(); err != nil {
		return asseterr.Wrap(asseterr.IOError, file, err)
	}
	r.entries = entries
	return nil
}

// Cleanup removes every entry whose assetRoot/path does not exist. It
// never deletes files.
func (r *Registry) Cleanup() {
	for assetID, e := range r.entries {
		full := filepath.Join(r.assetRoot, e.Path)
		if _, err := os.Stat(full); os.IsNotExist(err) {
			delete(r.entries, assetID)
		}
	}
}

// SourcePath converts fullPath to or from an asset-root-relative form.
func (r *Registry) SourcePath(fullPath string, relative bool) string {
	if relative {
		if rel, ok := strings.CutPrefix(fullPath, r.assetRoot+string(filepath.Separator)); ok {
			return rel
		}
		if rel, err := filepath.Rel(r.assetRoot, fullPath); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
		return fullPath
	}
	if filepath.IsAbs(fullPath) {
		return fullPath
	}
	return filepath.Join(r.assetRoot, fullPath)
}

// ImportedPath builds the cooked-output path for an asset of the
// given kind and name: "<imported>/<kind>/<name>" when relative,
// "<assetRoot>/<imported>/<kind>/<name>" otherwise. An empty name is
// replaced with a fresh random id's canonical string so paths stay
// unique.
func (r *Registry) ImportedPath(kind asset.Kind, name string, relative bool) string {
	if name == "" {
		name = id.Random().String()
	}
	rel := filepath.Join(r.importedFolder, kind.String(), name)
	if relative {
		return rel
	}
	return filepath.Join(r.assetRoot, rel)
}
