package pipeline

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/matzehuels/spritetower/pkg/atlas"
	"github.com/matzehuels/spritetower/pkg/cache"
)

// ReadFolder reads every regular file directly inside dir, sorted by name.
// Subdirectories are not descended into; non-SVG files are passed through
// and later reported as skipped.
func ReadFolder(dir string) ([]atlas.SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []atlas.SourceFile
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		files = append(files, atlas.SourceFile{Name: path, Data: data})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// SourceHash digests the ordered source files, names included, so a rename
// changes the hash as well as an edit does.
func SourceHash(files []atlas.SourceFile) string {
	parts := make([][]byte, 0, 2*len(files))
	for _, f := range files {
		parts = append(parts, []byte(f.Name), f.Data)
	}
	return cache.HashParts(parts...)
}
