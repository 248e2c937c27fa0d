package importer

import (
	"vasset/asset"
	"vasset/codec"
	"vasset/id"
	"vasset/registry"
)

// writeVimportSidecar records the edit-time link from sourcePath to its
// cooked output as a `.vimport` INI sidecar next to the source file:
// the pack step scans `*.vimport` files to discover what to put in a
// PKG archive, not the registry.
func writeVimportSidecar(reg *registry.Registry, sourcePath string, assetID id.Id, importerName, relativeOutput string, params map[string]string) error {
	desc := &asset.ImportDescriptor{
		Version:  asset.CurrentImportVersion,
		Importer: importerName,
		Uid:      assetID,
		Source:   reg.SourcePath(sourcePath, true),
		Output:   relativeOutput,
		Params:   params,
	}
	return codec.SaveVimport(sourcePath+".vimport", desc)
}
