package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/johan-windahl/procurdo/app/search"
)

// Catalog holds the CPV code catalogue served to the search form's CPV
// selector. Entries are loaded from YAML files in the catalogue directory
// and kept in memory; Reload swaps the set atomically.
type Catalog struct {
	dir     string
	entries []Entry
	mu      sync.RWMutex
}

func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

// Run performs the initial load. A missing catalogue directory is not an
// error; the service then simply serves an empty catalogue.
func (c *Catalog) Run() error {
	return c.Reload()
}

// Reload re-reads every catalogue file and replaces the cached entries.
func (c *Catalog) Reload() error {
	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(c.dir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find catalogue files: %w", err)
	}
	yamlFiles, err := filepath.Glob(filepath.Join(c.dir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("failed to find catalogue files: %w", err)
	}
	files = append(files, yamlFiles...)

	seen := make(map[string]bool)
	var entries []Entry
	for _, file := range files {
		fileEntries, err := loadFile(file)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}
		for _, entry := range fileEntries {
			code := search.NormalizeCPVCode(entry.Code)
			if code == "" || seen[code] {
				continue
			}
			seen[code] = true
			entry.Code = code
			entries = append(entries, entry)
		}
		slog.Debug("Catalogue file loaded", "file", file, "entries", len(fileEntries))
	}

	// Labels are Swedish; sort with Swedish collation so the selector
	// lists å/ä/ö at the end of the alphabet rather than by byte order.
	collator := collate.New(language.Swedish)
	collator.Sort(byLabel(entries))

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()

	return nil
}

// Entries returns the loaded catalogue entries in display order.
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]Entry, len(c.entries))
	copy(entries, c.entries)
	return entries
}

// Count reports the number of loaded entries.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func loadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, entry := range file.Entries {
		if entry.Label == "" {
			return nil, fmt.Errorf("entry %d is missing a label", i)
		}
	}

	return file.Entries, nil
}

// byLabel adapts entries to the collate.Lister interface.
type byLabel []Entry

func (e byLabel) Len() int           { return len(e) }
func (e byLabel) Swap(i, j int)      { e[i], e[j] = e[j], e[i] }
func (e byLabel) Bytes(i int) []byte { return []byte(e[i].Label) }
