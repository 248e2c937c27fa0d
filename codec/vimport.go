package codec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"vasset/asset"
	"vasset/asseterr"
	"vasset/id"
)

type vimportSection int

const (
	sectionNone vimportSection = iota
	sectionVImport
	sectionSource
	sectionOutput
	sectionParams
)

func parseVimportSection(name string) vimportSection {
	switch name {
	case "vimport":
		return sectionVImport
	case "source":
		return sectionSource
	case "output":
		return sectionOutput
	case "params":
		return sectionParams
	default:
		return sectionNone
	}
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// LoadVimport reads path as a `.vimport` descriptor. Any of
// importer/uid/source/output missing, or a malformed uid or version,
// fails with InvalidImportFile.
func LoadVimport(path string) (*asset.ImportDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, asseterr.Wrap(asseterr.NotFound, path, err)
		}
		return nil, asseterr.Wrap(asseterr.IOError, path, err)
	}
	defer f.Close()
	return DecodeVimport(f, path)
}

// DecodeVimport parses the `.vimport` INI dialect from r, used both
// by LoadVimport and by filesystem views that already hold the bytes
// (e.g. read through a non-OS-backed mount).
func DecodeVimport(r io.Reader, path string) (*asset.ImportDescriptor, error) {
	out := &asset.ImportDescriptor{Params: map[string]string{}}
	sec := sectionNone
	haveImporter, haveUid, haveSource, haveOutput := false, false, false, false

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			sec = parseVimportSection(strings.TrimSpace(line[1 : len(line)-1]))
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		val := stripQuotes(strings.TrimSpace(line[eq+1:]))

		switch sec {
		case sectionVImport:
			switch key {
			case "version":
				v, err := strconv.ParseUint(val, 10, 32)
				if err != nil {
					return nil, asseterr.New(asseterr.InvalidImportFile, path)
				}
				out.Version = uint32(v)
			case "importer":
				out.Importer = val
				haveImporter = true
			case "uid":
				u, err := id.Parse(val)
				if err != nil || u.IsNil() {
					return nil, asseterr.New(asseterr.InvalidImportFile, path)
				}
				out.Uid = u
				haveUid = true
			}
		case sectionSource:
			if key == "file" {
				out.Source = val
				haveSource = true
			}
		case sectionOutput:
			if key == "file" {
				out.Output = val
				haveOutput = true
			}
		case sectionParams:
			out.Params[key] = val
		}
	}
	if err := sc.Err(); err != nil {
		return nil, asseterr.Wrap(asseterr.IOError, path, err)
	}

	if !haveImporter || !haveUid || !haveSource || !haveOutput {
		return nil, asseterr.New(asseterr.InvalidImportFile, path)
	}
	return out, nil
}

// SaveVimport writes d to path in the same INI dialect LoadVimport
// accepts, quoting the importer, uid, source and output values, and
// writing param values unquoted with keys sorted for deterministic
// output.
func SaveVimport(path string, d *asset.ImportDescriptor) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "[vimport]\n")
	fmt.Fprintf(w, "version=%d\n", d.Version)
	fmt.Fprintf(w, "importer=%q\n", d.Importer)
	fmt.Fprintf(w, "uid=%q\n\n", d.Uid.String())

	fmt.Fprintf(w, "[source]\n")
	fmt.Fprintf(w, "file=%q\n\n", d.Source)

	fmt.Fprintf(w, "[output]\n")
	fmt.Fprintf(w, "file=%q\n\n", d.Output)

	fmt.Fprintf(w, "[params]\n")
	keys := make([]string, 0, len(d.Params))
	for k := range d.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s=%s\n", k, d.Params[k])
	}

	return w.Flush()
}
