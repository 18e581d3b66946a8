package driver

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"stylic/internal/diag"
	"stylic/internal/project"
	"stylic/internal/source"
	"stylic/internal/styles"
)

// Bump when the payload format changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты извлечения по хешу содержимого на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload stores one file's extraction outcome for fast re-runs.
type DiskPayload struct {
	Schema uint16

	Path      string
	Output    string
	Changed   bool
	Rewritten int
	Dropped   int

	Rules []CachedRule
	Diags []CachedDiag
}

// CachedRule mirrors styles.NamedRule for serialization.
type CachedRule struct {
	Name string
	CSS  string
}

// CachedDiag keeps enough of a diagnostic to replay it on a cache hit.
// Spans are stored as offsets; the file ID is rebound on load.
type CachedDiag struct {
	Severity uint8
	Code     uint32
	Message  string
	Start    uint32
	End      uint32
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	// Подкаталог "files" для удобства очистки.
	return filepath.Join(c.dir, "files", fmt.Sprintf("%x.mp", key))
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A schema
// mismatch counts as a miss.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey combines the file content hash with the configuration
// digest, so a config change invalidates every entry.
func cacheKey(file *source.File, cfg project.Config) project.Digest {
	return project.Combine(project.Digest(file.Hash), configDigest(cfg))
}

func configDigest(cfg project.Config) project.Digest {
	h := sha256.New()
	for _, part := range []string{
		cfg.Primitive.Source, cfg.Primitive.Name,
		cfg.Attrs.CSS, cfg.Attrs.Class,
		cfg.Extract.ClassPrefix,
		fmt.Sprintf("%v", cfg.Extract.Static),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	var out project.Digest
	copy(out[:], h.Sum(nil))
	return out
}

func payloadFromResult(res *ExtractResult) *DiskPayload {
	p := &DiskPayload{
		Schema:    diskCacheSchemaVersion,
		Path:      res.Path,
		Output:    res.Output,
		Changed:   res.Changed,
		Rewritten: res.Rewritten,
		Dropped:   res.Dropped,
	}
	for _, r := range res.Rules {
		p.Rules = append(p.Rules, CachedRule(r))
	}
	for _, d := range res.Bag.Items() {
		p.Diags = append(p.Diags, CachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint32(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		})
	}
	return p
}

func resultFromPayload(p *DiskPayload, file *source.File, maxDiagnostics int) ExtractResult {
	bag := diag.NewBag(maxDiagnostics)
	for _, d := range p.Diags {
		bag.Add(diag.New(diag.Severity(d.Severity), diag.Code(d.Code), source.Span{
			File:  file.ID,
			Start: d.Start,
			End:   d.End,
		}, d.Message))
	}
	res := ExtractResult{
		Path:      file.Path,
		FileID:    file.ID,
		Output:    p.Output,
		Changed:   p.Changed,
		Rewritten: p.Rewritten,
		Dropped:   p.Dropped,
		Bag:       bag,
		FromCache: true,
	}
	for _, r := range p.Rules {
		res.Rules = append(res.Rules, styles.NamedRule(r))
	}
	return res
}
