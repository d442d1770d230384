// Package importer routes statement files in the import directory to the
// configured extractor profiles.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/statement"
)

// Registry holds extractors keyed by profile name, in registration order.
type Registry struct {
	order      []string
	extractors map[string]*statement.Extractor
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]*statement.Extractor)}
}

// Register adds an extractor. Panics on duplicate profile name.
func (r *Registry) Register(name string, e *statement.Extractor) {
	key := strings.ToLower(name)
	if _, ok := r.extractors[key]; ok {
		panic("duplicate statement profile: " + key)
	}
	r.order = append(r.order, key)
	r.extractors[key] = e
}

// Get returns the extractor for a profile name, or nil.
func (r *Registry) Get(name string) *statement.Extractor {
	return r.extractors[strings.ToLower(name)]
}

// Resolve returns the first registered extractor whose Identify predicate
// accepts contents.
func (r *Registry) Resolve(contents []byte) (string, *statement.Extractor, bool) {
	for _, name := range r.order {
		if e := r.extractors[name]; e.Identify(contents) {
			return name, e, true
		}
	}
	return "", nil, false
}

// FromConfig builds a registry from the configured statement profiles.
func FromConfig(cfg *config.Config, logger *log.Logger) (*Registry, error) {
	r := NewRegistry()
	for _, p := range cfg.Statements {
		e, err := statement.New(statement.Options{
			Branch:   p.Branch,
			Number:   p.Number,
			Account:  p.Account,
			Currency: p.Currency,
			Encoding: p.Encoding,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", p.Name, err)
		}
		r.Register(p.Name, e)
	}
	return r, nil
}

// importDir is the subdirectory for incoming statement CSVs.
const importDir = "import"

// processedDir is the subdirectory processed statements are archived to.
const processedDir = "import/processed"

// Scan returns CSV files in <root>/import/.
func Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/ under
// archiveName (or its own name if archiveName is empty).
func MarkProcessed(root, fileName, archiveName string) error {
	src := filepath.Join(root, importDir, fileName)
	dstDir := filepath.Join(root, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	if archiveName == "" {
		archiveName = fileName
	}
	dst := filepath.Join(dstDir, archiveName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
