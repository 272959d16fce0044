package moduleio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds how many dependency modules stay indexed.
const DefaultCacheSize = 64

// documentSuffixes are tried in order when locating a dependency module.
var documentSuffixes = []string{".dll.yaml", ".yaml"}

// moduleIndex lists the type names of one dependency module. A nil types map
// means the module could not be located or parsed.
type moduleIndex struct {
	path  string
	types map[string]struct{}
}

func (m *moduleIndex) has(name string) bool {
	_, ok := m.types[name]
	return ok
}

// resolver answers whether a foreign module defines a type. Lookups of the
// same scope hit the LRU cache, including negative results.
type resolver struct {
	dirs   []string
	cache  *lru.Cache[string, *moduleIndex]
	logger *log.Logger
}

func newResolver(dirs []string, size int, logger *log.Logger) (*resolver, error) {
	cache, err := lru.New[string, *moduleIndex](size)
	if err != nil {
		return nil, err
	}

	return &resolver{dirs: dirs, cache: cache, logger: logger}, nil
}

// defines reports whether module scope declares the type name.
func (r *resolver) defines(scope, name string) bool {
	return r.index(scope).has(name)
}

func (r *resolver) index(scope string) *moduleIndex {
	if idx, ok := r.cache.Get(scope); ok {
		return idx
	}

	idx := r.locate(scope)
	r.cache.Add(scope, idx)

	return idx
}

func (r *resolver) locate(scope string) *moduleIndex {
	for _, dir := range r.dirs {
		for _, suffix := range documentSuffixes {
			path := filepath.Join(dir, scope+suffix)

			data, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			if err != nil {
				r.logger.Warn("dependency module unreadable", "module", scope, "path", path, "error", err)
				return &moduleIndex{path: path}
			}

			doc, err := decodeDocument(data)
			if err != nil {
				r.logger.Warn("dependency module unparsable", "module", scope, "path", path, "error", err)
				return &moduleIndex{path: path}
			}

			r.logger.Debug("dependency module indexed", "module", scope, "path", path, "types", len(doc.Types))

			return &moduleIndex{path: path, types: doc.typeNames()}
		}
	}

	r.logger.Debug("dependency module not found", "module", scope, "search_dirs", r.dirs)

	return &moduleIndex{}
}
