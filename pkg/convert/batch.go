package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Mode selects the conversion direction of a batch run.
type Mode int

const (
	Encode Mode = iota
	Decode
)

func (m Mode) srcExt() string {
	if m == Decode {
		return ".cap"
	}
	return ".xml"
}

func (m Mode) convert(path string, opts Options) (string, int, error) {
	if m == Decode {
		return DecodeFile(path, opts)
	}
	return EncodeFile(path, opts)
}

// Run converts every named input in order, printing one OK or FAIL line per
// file. Arguments may be files or directories; a directory contributes its
// matching files sorted by name, and no arguments means the current
// directory. A failed file does not stop the batch, but any failure makes
// the run itself an error.
func Run(args []string, mode Mode, opts Options) error {
	files, err := expandArgs(args, mode.srcExt())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("convert: no %s files found", mode.srcExt())
	}

	failed := 0
	for _, in := range files {
		out, n, err := mode.convert(in, opts)
		if err != nil {
			failed++
			fmt.Printf("FAIL: %s: %v\n", filepath.Base(in), err)
			continue
		}
		fmt.Printf("OK: %s -> %s (%d bytes)\n", filepath.Base(in), filepath.Base(out), n)
	}
	if failed > 0 {
		return fmt.Errorf("convert: %d of %d files failed", failed, len(files))
	}
	return nil
}

// expandArgs resolves the argument list to concrete input paths. Explicit
// file arguments pass through untouched so a bad path surfaces as that
// file's own FAIL line; directories are scanned one level deep for the
// wanted extension, case-insensitively.
func expandArgs(args []string, ext string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			files = append(files, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("convert: read directory %s: %w", arg, err)
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if strings.EqualFold(filepath.Ext(e.Name()), ext) {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Slice(found, func(i, j int) bool {
			return strings.ToLower(found[i]) < strings.ToLower(found[j])
		})
		files = append(files, found...)
	}
	return files, nil
}
