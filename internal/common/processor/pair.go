package processor

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"minnow/internal/common/errors"
	"minnow/internal/common/properties"
)

// Pair is a properties file and the data file it describes.
type Pair struct {
	PropertiesPath string
	DataPath       string
}

// FindPair locates the single pair in dir. A regular file whose name ends
// with one of suffixes (default properties.Extension) is a metadata
// candidate; exactly one candidate must exist and its data file, the same
// path without the suffix, must be a regular file.
func FindPair(dir string, suffixes ...string) (*Pair, error) {
	if len(suffixes) == 0 {
		suffixes = []string{properties.Extension}
	}
	ordered := append([]string(nil), suffixes...)
	sort.SliceStable(ordered, func(i, j int) bool { return len(ordered[i]) > len(ordered[j]) })

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewInputDirError(dir, err)
	}

	var matches []string
	var stems []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		for _, suffix := range ordered {
			if strings.HasSuffix(name, suffix) && name != suffix {
				matches = append(matches, name)
				stems = append(stems, strings.TrimSuffix(name, suffix))
				break
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, errors.NewNoMetadataFileError(dir)
	case 1:
	default:
		return nil, errors.NewAmbiguousInputError(dir, matches)
	}

	pair := &Pair{
		PropertiesPath: filepath.Join(dir, matches[0]),
		DataPath:       filepath.Join(dir, stems[0]),
	}

	info, err := os.Stat(pair.DataPath)
	if err != nil || !info.Mode().IsRegular() {
		return nil, errors.NewMissingDataFileError(pair.PropertiesPath, pair.DataPath)
	}

	return pair, nil
}
