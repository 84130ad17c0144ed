package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

const slotExt = ".json"

// Manager reads and writes cache slots under a single directory.
type Manager struct {
	dir string
}

// SlotInfo describes a persisted slot.
type SlotInfo struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
	Version string
	Entries int
	Corrupt bool
}

// NewManager returns a Manager rooted at dir. The directory is created
// lazily on the first Save.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// Dir returns the directory slots are stored in.
func (m *Manager) Dir() string {
	return m.dir
}

// Path returns the file path of the named slot.
func (m *Manager) Path(name string) string {
	return filepath.Join(m.dir, name+slotExt)
}

func validSlotName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid cache slot name %q", name)
	}
	return nil
}

// Save writes c to the named slot. The file is written to a temporary name
// and renamed into place so readers never observe a partial slot.
func Save[T any](m *Manager, name string, c *Cache[T]) error {
	if err := validSlotName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(m.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing cache %s: %w", name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing cache %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing cache %s: %w", name, err)
	}
	if err := os.Rename(tmpName, m.Path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing cache %s: %w", name, err)
	}
	return nil
}

// Load reads the named slot. A missing slot yields ErrNotFound and an
// undecodable one ErrCorrupt. The stored version is not checked here; use
// ShouldUpdate for that.
func Load[T any](m *Manager, name string) (*Cache[T], error) {
	if err := validSlotName(name); err != nil {
		return nil, err
	}
	path := m.Path(name)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache %s: %w", name, err)
	}

	var c Cache[T]
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	if c.Entries == nil {
		c.Entries = make(map[string]Entry[T])
	}
	return &c, nil
}

// header decodes only the envelope of a slot, leaving entries raw.
type header struct {
	Version string                     `json:"version"`
	Entries map[string]json.RawMessage `json:"entries"`
}

func (m *Manager) readHeader(name string) (header, error) {
	var h header
	data, err := os.ReadFile(m.Path(name))
	if err != nil {
		return h, err
	}
	if err := json.Unmarshal(data, &h); err != nil {
		return h, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return h, nil
}

// ShouldUpdate reports whether the named slot needs a refresh: it is
// missing, older than maxAge, unreadable, or tagged with a version other
// than version. It never modifies the slot.
func (m *Manager) ShouldUpdate(name string, maxAge time.Duration, version string) bool {
	if validSlotName(name) != nil {
		return true
	}
	info, err := os.Stat(m.Path(name))
	if err != nil {
		return true
	}
	if time.Since(info.ModTime()) > maxAge {
		return true
	}
	h, err := m.readHeader(name)
	if err != nil {
		return true
	}
	return !SameVersion(h.Version, version)
}

// SameVersion compares two cache version tags. Tags that both parse as
// semver are compared semantically ("v1.0" equals "1.0.0"); anything else is
// compared as a plain string.
func SameVersion(a, b string) bool {
	av, aerr := semver.NewVersion(a)
	bv, berr := semver.NewVersion(b)
	if aerr == nil && berr == nil {
		return av.Equal(bv)
	}
	return a == b
}

// Clear removes the named slot. Clearing a slot that does not exist is not
// an error.
func (m *Manager) Clear(name string) error {
	if err := validSlotName(name); err != nil {
		return err
	}
	err := os.Remove(m.Path(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing cache %s: %w", name, err)
	}
	return nil
}

// ClearAll removes every slot in the cache directory and returns the names
// that were removed.
func (m *Manager) ClearAll() ([]string, error) {
	slots, err := m.List()
	if err != nil {
		return nil, err
	}
	var removed []string
	for _, s := range slots {
		if err := m.Clear(s.Name); err != nil {
			return removed, err
		}
		removed = append(removed, s.Name)
	}
	return removed, nil
}

// Stat describes the named slot.
func (m *Manager) Stat(name string) (SlotInfo, error) {
	if err := validSlotName(name); err != nil {
		return SlotInfo{}, err
	}
	path := m.Path(name)
	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		return SlotInfo{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return SlotInfo{}, fmt.Errorf("reading cache %s: %w", name, err)
	}

	info := SlotInfo{
		Name:    name,
		Path:    path,
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
	}
	h, err := m.readHeader(name)
	if err != nil {
		info.Corrupt = true
		return info, nil
	}
	info.Version = h.Version
	info.Entries = len(h.Entries)
	return info, nil
}

// List describes every slot in the cache directory, sorted by name. A
// missing directory yields an empty list.
func (m *Manager) List() ([]SlotInfo, error) {
	dirEntries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}

	var names []string
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), slotExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(de.Name(), slotExt))
	}
	sort.Strings(names)

	slots := make([]SlotInfo, 0, len(names))
	for _, name := range names {
		info, err := m.Stat(name)
		if err != nil {
			continue
		}
		slots = append(slots, info)
	}
	return slots, nil
}
