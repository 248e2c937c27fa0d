package importer

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"vasset/internal/vlog"
)

// Pipeline bundles the two concrete importers (which share one
// registry through their own Registry fields), so a folder walk can
// dispatch each source file by extension.
type Pipeline struct {
	Textures *TextureImporter
	Meshes   *MeshImporter
	Logger   *zap.SugaredLogger
}

// ImportOrReimportFolder walks root, importing every recognized
// source file it finds. A per-file failure is logged and the walk
// continues; the returned error is non-nil only if the walk itself
// could not traverse the tree. The boolean result reports whether
// every visited file imported cleanly.
func (p *Pipeline) ImportOrReimportFolder(root string, reimport bool) (bool, error) {
	clean := true
	log := vlog.Or(p.Logger)

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "imported" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".vimport") {
			return nil
		}

		ext := filepath.Ext(path)
		switch {
		case IsTextureExt(ext):
			if _, err := p.Textures.Import(path, reimport); err != nil {
				log.Warnw("texture import failed", "path", path, "err", err)
				clean = false
			}
		case IsMeshExt(ext):
			if _, err := p.Meshes.Import(path, reimport); err != nil {
				log.Warnw("mesh import failed", "path", path, "err", err)
				clean = false
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return clean, nil
}
