package asset

import "vasset/id"

// ImportDescriptor is the edit-time `.vimport` sidecar record. It is
// deliberately stable: no derived or cache fields (content hashes,
// timestamps) live here.
type ImportDescriptor struct {
	Version  uint32
	Importer string // "texture" | "mesh"
	Uid      id.Id
	Source   string // logical source path
	Output   string // cooked asset path, relative to the asset root
	Params   map[string]string
}

// CurrentImportVersion is the version the importers write into new
// sidecars. The codec reads the version field as-is and does not
// reject other values.
const CurrentImportVersion = 1
