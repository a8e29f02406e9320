// Package cache implements the persistent function-database cache: a
// metadata-validated binary snapshot that lets a second run skip re-parsing
// an unchanged source tree (spec §4.5).
package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/melodypapa/autosar-calltree/functiondb"
	"github.com/melodypapa/autosar-calltree/model"
	"github.com/melodypapa/autosar-calltree/modulemap"
)

// magic identifies the container format; version allows the on-disk layout
// to evolve without silently misreading an older cache.
var magic = [4]byte{'A', 'C', 'T', 'C'}

const formatVersion byte = 1

// ProgressSink receives verbose progress lines during load.
type ProgressSink interface {
	Progress(msg string)
}

// Metadata captures everything needed to validate a cached snapshot against
// the current on-disk source tree before trusting it.
type Metadata struct {
	SourceDir  string
	FileCount  int
	FileHashes map[string]string // file path as discovered under SourceDir -> hex sha256
}

// container is the full on-disk payload, written after the magic/version
// header.
type container struct {
	Metadata Metadata
	ByFile   map[string][]model.FunctionInfo
}

// DefaultPath returns the conventional cache location for a source
// directory: "<source_dir>/.cache/function_db.bin".
func DefaultPath(sourceDir string) string {
	return filepath.Join(sourceDir, ".cache", "function_db.bin")
}

// Save computes the current metadata record and writes db's by_file index
// to path, atomically (write to a temp file, then rename). An I/O error is
// returned to the caller to log as a warning; per spec §4.5 a save failure
// must never fail the surrounding build.
func Save(db *functiondb.FunctionDatabase, sourceDir, path string) error {
	meta, err := computeMetadata(sourceDir)
	if err != nil {
		return fmt.Errorf("cache: compute metadata: %w", err)
	}

	byFile := make(map[string][]model.FunctionInfo, len(db.FileIndex()))
	for path, infos := range db.FileIndex() {
		copies := make([]model.FunctionInfo, len(infos))
		for i, p := range infos {
			copies[i] = *p
		}
		byFile[path] = copies
	}

	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.WriteByte(formatVersion)
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(container{Metadata: meta, ByFile: byFile}); err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cache: create cache dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cache: write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("cache: rename temp file: %w", err)
	}
	return nil
}

// Load attempts to read and validate a cached snapshot at path against
// sourceDir's current state. It returns (db, true) only when the cache
// exists, decodes cleanly, and its metadata matches the on-disk tree
// exactly (spec §4.5 load protocol). Any other outcome is a cache miss,
// never an error — the caller falls back to a full parse.
func Load(path, sourceDir string, mapper *modulemap.Mapper, sink ProgressSink) (*functiondb.FunctionDatabase, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	if len(data) < len(magic)+1 || !bytes.Equal(data[:len(magic)], magic[:]) {
		logMiss(sink, "cache: bad header")
		return nil, false
	}
	if data[len(magic)] != formatVersion {
		logMiss(sink, "cache: unsupported version")
		return nil, false
	}

	var c container
	dec := gob.NewDecoder(bytes.NewReader(data[len(magic)+1:]))
	if err := dec.Decode(&c); err != nil {
		logMiss(sink, fmt.Sprintf("cache: decode failed: %v", err))
		return nil, false
	}

	// Re-walk sourceDir with the same file-discovery step Build uses, so a
	// file added since the cache was written shows up in current.FileCount
	// even though it has no entry in the cache's own FileHashes to recompute
	// against.
	paths, err := functiondb.DiscoverSourceFiles(sourceDir)
	if err != nil {
		logMiss(sink, fmt.Sprintf("cache: rescan source dir failed: %v", err))
		return nil, false
	}
	current, err := computeMetadataForPaths(sourceDir, paths)
	if err != nil {
		logMiss(sink, fmt.Sprintf("cache: recompute metadata failed: %v", err))
		return nil, false
	}

	if !metadataMatches(c.Metadata, current) {
		logMiss(sink, "cache: metadata mismatch, source tree changed")
		return nil, false
	}

	db := functiondb.RebuildFromFiles(c.ByFile, mapper, c.Metadata.FileCount)
	if sink != nil {
		for path := range c.ByFile {
			sink.Progress(fmt.Sprintf("restored %s from cache", path))
		}
	}
	return db, true
}

func metadataMatches(cached, current Metadata) bool {
	if cached.SourceDir != current.SourceDir {
		return false
	}
	if cached.FileCount != current.FileCount {
		return false
	}
	if len(cached.FileHashes) != len(current.FileHashes) {
		return false
	}
	for path, hash := range cached.FileHashes {
		if current.FileHashes[path] != hash {
			return false
		}
	}
	return true
}

// computeMetadata builds a Metadata record over every *.c file found by the
// same discovery step Build and Load use (used on Save), so files that
// define no functions are counted and hashed too.
func computeMetadata(sourceDir string) (Metadata, error) {
	paths, err := functiondb.DiscoverSourceFiles(sourceDir)
	if err != nil {
		return Metadata{}, err
	}
	return computeMetadataForPaths(sourceDir, paths)
}

func computeMetadataForPaths(sourceDir string, paths []string) (Metadata, error) {
	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return Metadata{}, err
	}

	sort.Strings(paths)
	hashes := make(map[string]string, len(paths))
	for _, path := range paths {
		hash, err := hashFile(path)
		if err != nil {
			return Metadata{}, fmt.Errorf("hash %s: %w", path, err)
		}
		hashes[path] = hash
	}

	return Metadata{
		SourceDir:  absSourceDir,
		FileCount:  len(paths),
		FileHashes: hashes,
	}, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func logMiss(sink ProgressSink, msg string) {
	if sink != nil {
		sink.Progress(msg)
	}
}
