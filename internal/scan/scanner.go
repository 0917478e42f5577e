package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// exportName matches the primary export naming convention: "messages" with an
// optional numeric suffix ("messages.html", "messages2.html", ...).
var exportName = regexp.MustCompile(`^messages(\d+)?$`)

// FindExports returns the export files under dir in processing order.
// Files named messages<N>.htm(l) come first, sorted by suffix ascending with
// the unsuffixed file at position zero. When none match, every .htm/.html
// file is used under the same ordering rule. Zero files is an error: the
// whole pipeline has nothing to process.
func FindExports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read export dir: %w", err)
	}

	var primary, fallback []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".html" && ext != ".htm" {
			continue
		}
		fallback = append(fallback, name)
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if exportName.MatchString(stem) {
			primary = append(primary, name)
		}
	}

	names := primary
	if len(names) == 0 {
		names = fallback
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no chat exports found under %s", dir)
	}

	sort.SliceStable(names, func(i, j int) bool {
		return sortKey(names[i]) < sortKey(names[j])
	})

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}

// sortKey extracts the numeric suffix of a messagesN file; unsuffixed and
// non-matching names sort as zero, keeping lexical read order among them.
func sortKey(name string) int {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	m := exportName.FindStringSubmatch(stem)
	if m == nil || m[1] == "" {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// ResolveSource picks the directory to ingest from: the upload directory when
// it holds exports, otherwise the seed data directory.
func ResolveSource(dataDir, uploadDir string) (string, []string, error) {
	if uploadDir != "" {
		if files, err := FindExports(uploadDir); err == nil {
			return uploadDir, files, nil
		}
	}
	files, err := FindExports(dataDir)
	if err != nil {
		return dataDir, nil, err
	}
	return dataDir, files, nil
}
