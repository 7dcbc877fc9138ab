// Package store implements disk-backed named-state persistence under a
// fixed byte budget: atomic save/load/delete, directory-per-concern
// layout, and a declarative budget snapshot.
package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kegliz/synthesis/qc/qerr"
	"github.com/kegliz/synthesis/qc/qmath"
)

const (
	// DefaultAllocatedBytes is the store's default byte budget, 20 GB.
	DefaultAllocatedBytes int64 = 20 * 1024 * 1024 * 1024
	// DefaultMaxQubits is the declared persistence ceiling, which may
	// exceed the in-engine N_MAX since the store only needs to persist,
	// not operate on, a state.
	DefaultMaxQubits = 18
	// DefaultMaxTimeSteps is the declared ceiling on evolve_schrodinger
	// trajectory lengths, reported through MaxTimeSteps(); the store
	// itself does not enforce it.
	DefaultMaxTimeSteps = 10000
)

// Config configures a Store's root directory and resource ceilings.
type Config struct {
	RootPath       string
	AllocatedBytes int64
	MaxQubits      int
	MaxTimeSteps   int
}

// StateMeta describes one named state without its amplitudes.
type StateMeta struct {
	Name      string
	NQubits   int
	Bytes     int64
	CreatedAt time.Time
}

// BudgetSnapshot is the store's `(allocated, used, available, used_pct)`
// view, recomputed on demand from the states/ directory.
type BudgetSnapshot struct {
	AllocatedBytes int64
	UsedBytes      int64
	AvailableBytes int64
	UsedPercent    float64
}

// Store is a single disk-backed namespace for quantum states. All
// mutating operations hold a single store-level mutex — spec.md §4.5
// explicitly forbids lock-free concurrent writers.
type Store struct {
	mu  sync.Mutex
	cfg Config
}

// New creates (if necessary) the states/, results/ and cache/
// directories under cfg.RootPath and returns a ready Store. Config zero
// values are replaced by their documented defaults.
func New(cfg Config) (*Store, error) {
	if cfg.AllocatedBytes == 0 {
		cfg.AllocatedBytes = DefaultAllocatedBytes
	}
	if cfg.MaxQubits == 0 {
		cfg.MaxQubits = DefaultMaxQubits
	}
	if cfg.MaxTimeSteps == 0 {
		cfg.MaxTimeSteps = DefaultMaxTimeSteps
	}
	if cfg.RootPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, qerr.New(qerr.IoError, "store: cannot resolve default root path: %v", err)
		}
		cfg.RootPath = filepath.Join(home, ".frankenstein", "synthesis_data")
	}

	for _, sub := range []string{"states", "results", "cache"} {
		if err := os.MkdirAll(filepath.Join(cfg.RootPath, sub), 0o755); err != nil {
			return nil, qerr.New(qerr.IoError, "store: cannot create %s directory: %v", sub, err)
		}
	}

	return &Store{cfg: cfg}, nil
}

func (s *Store) statesDir() string  { return filepath.Join(s.cfg.RootPath, "states") }
func (s *Store) resultsDir() string { return filepath.Join(s.cfg.RootPath, "results") }

// MaxQubits returns the store's declared persistence ceiling.
func (s *Store) MaxQubits() int { return s.cfg.MaxQubits }

// MaxTimeSteps returns the store's declared bound on evolve_schrodinger
// trajectory lengths.
func (s *Store) MaxTimeSteps() int { return s.cfg.MaxTimeSteps }

// validateName rejects empty names and reserved-character/traversal
// names per spec.md §4.5.
func validateName(name string) error {
	if name == "" {
		return qerr.New(qerr.InvalidName, "store: state name must not be empty")
	}
	if strings.ContainsAny(name, `/\:`) || strings.Contains(name, "..") {
		return qerr.New(qerr.InvalidName, "store: state name %q contains reserved characters", name)
	}
	return nil
}

func (s *Store) stateFile(name string) string {
	return filepath.Join(s.statesDir(), name+".qs")
}

// usedBytes sums the size of every states/*.qs file currently on disk.
func (s *Store) usedBytes() (int64, error) {
	entries, err := os.ReadDir(s.statesDir())
	if err != nil {
		return 0, qerr.New(qerr.IoError, "store: cannot list states directory: %v", err)
	}
	var total int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".qs") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}

// SaveState persists ψ under name, rejecting invalid names and budget
// overflows before doing any I/O, then writing atomically via a temp
// file, fsync, and rename.
func (s *Store) SaveState(name string, psi qmath.Vector, description string) error {
	if err := validateName(name); err != nil {
		return err
	}
	nQubits := bitLength(len(psi))
	if nQubits < 0 {
		return qerr.New(qerr.InvalidArgument, "store: state length %d is not a power of two", len(psi))
	}
	if nQubits > s.cfg.MaxQubits {
		return qerr.New(qerr.Capacity, "store: state has %d qubits, exceeds store max_qubits=%d", nQubits, s.cfg.MaxQubits)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	size := encodedSize(nQubits, description)
	used, err := s.usedBytes()
	if err != nil {
		return err
	}

	// Replacing an existing state of the same name frees its old bytes
	// first, so overwriting a state with itself never spuriously trips
	// OutOfSpace.
	if info, statErr := os.Stat(s.stateFile(name)); statErr == nil {
		used -= info.Size()
	}

	if used+size > s.cfg.AllocatedBytes {
		return qerr.New(qerr.OutOfSpace, "store: saving %q would use %d bytes, exceeding budget %d", name, used+size, s.cfg.AllocatedBytes)
	}

	rec := record{
		NQubits:     uint8(nQubits),
		CreatedAt:   time.Now().UnixMilli(),
		Description: description,
		Amplitudes:  psi,
	}
	data := encodeRecord(rec)

	final := s.stateFile(name)
	tmp := final + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return qerr.New(qerr.IoError, "store: cannot create temp file for %q: %v", name, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return qerr.New(qerr.IoError, "store: write failed for %q: %v", name, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return qerr.New(qerr.IoError, "store: fsync failed for %q: %v", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return qerr.New(qerr.IoError, "store: close failed for %q: %v", name, err)
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return qerr.New(qerr.IoError, "store: rename failed for %q: %v", name, err)
	}
	return nil
}

// LoadState returns a fresh owned ψ and its qubit count.
func (s *Store) LoadState(name string) (qmath.Vector, int, error) {
	if err := validateName(name); err != nil {
		return nil, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.stateFile(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, qerr.New(qerr.NotFound, "store: no state named %q", name)
		}
		return nil, 0, qerr.New(qerr.IoError, "store: read failed for %q: %v", name, err)
	}

	rec, err := decodeRecord(data)
	if err != nil {
		return nil, 0, err
	}
	return rec.Amplitudes, int(rec.NQubits), nil
}

// DeleteState removes a state file, idempotently: the second call on an
// absent name reports existed=false with no error.
func (s *Store) DeleteState(name string) (bool, error) {
	if err := validateName(name); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.stateFile(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, qerr.New(qerr.IoError, "store: delete failed for %q: %v", name, err)
	}
	return true, nil
}

// ListStates returns every named state, ordered by created_at ascending.
func (s *Store) ListStates() ([]StateMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.statesDir())
	if err != nil {
		return nil, qerr.New(qerr.IoError, "store: cannot list states directory: %v", err)
	}

	out := make([]StateMeta, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".qs") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".qs")
		data, err := os.ReadFile(filepath.Join(s.statesDir(), entry.Name()))
		if err != nil {
			continue
		}
		rec, err := decodeRecord(data)
		if err != nil {
			continue
		}
		info, _ := entry.Info()
		var size int64
		if info != nil {
			size = info.Size()
		}
		out = append(out, StateMeta{
			Name:      name,
			NQubits:   int(rec.NQubits),
			Bytes:     size,
			CreatedAt: time.UnixMilli(rec.CreatedAt),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Storage returns a snapshot of the budget.
func (s *Store) Storage() (BudgetSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	used, err := s.usedBytes()
	if err != nil {
		return BudgetSnapshot{}, err
	}
	pct := 0.0
	if s.cfg.AllocatedBytes > 0 {
		pct = float64(used) / float64(s.cfg.AllocatedBytes) * 100
	}
	return BudgetSnapshot{
		AllocatedBytes: s.cfg.AllocatedBytes,
		UsedBytes:      used,
		AvailableBytes: s.cfg.AllocatedBytes - used,
		UsedPercent:    pct,
	}, nil
}

func bitLength(n int) int {
	if n <= 0 {
		return -1
	}
	k := 0
	for (1 << uint(k)) < n {
		k++
	}
	if 1<<uint(k) != n {
		return -1
	}
	return k
}
