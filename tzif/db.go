package tzif

import (
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
)

// ZoneEntry is one named zone in a TzDb: the raw bytes are loaded and
// parsed at most once, on first request. sync.Once gives double-checked
// locking for free — the fast path after the first call is a single
// atomic load, no mutex.
type ZoneEntry struct {
	ID   string
	path string
	fsys fs.FS

	once  sync.Once
	rules ZoneRules
	err   error
}

// Rules returns the parsed ZoneRules for this entry, loading and parsing
// the underlying file on first call.
func (e *ZoneEntry) Rules() (ZoneRules, error) {
	e.once.Do(func() {
		data, err := fs.ReadFile(e.fsys, e.path)
		if err != nil {
			e.err = fmt.Errorf("tzif: read %s: %w", e.path, err)
			slog.Warn("tzif: lazy-load failed", slog.String("zone", e.ID), slog.Any("error", e.err))

			return
		}

		e.rules, e.err = Parse(data)
		if e.err != nil {
			slog.Warn("tzif: lazy-load failed", slog.String("zone", e.ID), slog.Any("error", e.err))
		}
	})

	return e.rules, e.err
}

// TzDb is a lazy registry over a zoneinfo directory tree: zone files are
// enumerated at construction, but none is read or parsed until its
// identifier is first requested.
type TzDb struct {
	fsys    fs.FS
	version string
	zones   map[string]*ZoneEntry
}

// Open builds a TzDb by enumerating zone files under root (a zoneinfo-shaped
// fs.FS). It reads a version marker ("tzdata.zi" preferred, a top-level
// "+VERSION" file as fallback) and registers every file that looks like a
// zone: non-hidden, not itself a "+"-prefixed marker, no file extension,
// and containing at least one uppercase character.
func Open(root fs.FS) (*TzDb, error) {
	db := &TzDb{fsys: root, zones: make(map[string]*ZoneEntry)}

	if v, err := readVersionMarker(root); err == nil {
		db.version = v
	}

	err := fs.WalkDir(root, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if !isZoneFileName(path) {
			return nil
		}

		db.zones[path] = &ZoneEntry{ID: path, path: path, fsys: root}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("tzif: enumerate zoneinfo root: %w", err)
	}

	return db, nil
}

// Version reports the tzdata release string, or "" if no marker was found.
func (db *TzDb) Version() string { return db.version }

// Zone looks up a zone by identifier (e.g. "America/New_York"), returning
// its lazily-loaded rules.
func (db *TzDb) Zone(id string) (ZoneRules, error) {
	entry, ok := db.zones[id]
	if !ok {
		return nil, fmt.Errorf("tzif: unknown zone %q", id)
	}

	return entry.Rules()
}

// Zones returns every registered zone identifier.
func (db *TzDb) Zones() []string {
	ids := make([]string, 0, len(db.zones))
	for id := range db.zones {
		ids = append(ids, id)
	}

	return ids
}

func readVersionMarker(root fs.FS) (string, error) {
	if data, err := fs.ReadFile(root, "tzdata.zi"); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			if after, ok := strings.CutPrefix(line, "# version "); ok {
				return strings.TrimSpace(after), nil
			}
		}
	}

	entries, err := fs.ReadDir(root, ".")
	if err != nil {
		return "", err
	}

	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "+") {
			data, err := fs.ReadFile(root, e.Name())
			if err == nil {
				return strings.TrimSpace(string(data)), nil
			}
		}
	}

	return "", fmt.Errorf("tzif: no version marker found")
}

func isZoneFileName(path string) bool {
	base := path

	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		base = path[idx+1:]
	}

	if base == "" || strings.HasPrefix(base, ".") || strings.HasPrefix(base, "+") {
		return false
	}

	if strings.Contains(base, ".") {
		return false
	}

	hasUpper := false

	for _, r := range path {
		if r >= 'A' && r <= 'Z' {
			hasUpper = true

			break
		}
	}

	return hasUpper
}
