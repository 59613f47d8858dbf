package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/bft-labs/cardanocli/internal/ports"
)

// TmpDirName is the folder under the working directory holding generated
// artifacts.
const TmpDirName = "tmp"

// UUIDNamer implements ports.Namer with random UUIDs.
type UUIDNamer struct {
	tmpDir string
}

// NewUUIDNamer creates a namer for <dir>/tmp.
func NewUUIDNamer(dir string) *UUIDNamer {
	return &UUIDNamer{tmpDir: filepath.Join(dir, TmpDirName)}
}

// Name returns <dir>/tmp/<kind>_<uuid><ext>.
func (n *UUIDNamer) Name(kind, ext string) string {
	return filepath.Join(n.tmpDir, kind+"_"+uuid.NewString()+ext)
}

// ArtifactStore implements ports.ArtifactWriter on the local file system.
// Artifacts are never deleted by the store.
type ArtifactStore struct {
	tmpDir string
	namer  ports.Namer
}

// NewArtifactStore creates a store writing under <dir>/tmp, creating the
// folder if needed.
func NewArtifactStore(dir string, namer ports.Namer) (*ArtifactStore, error) {
	tmp := filepath.Join(dir, TmpDirName)
	if err := os.MkdirAll(tmp, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", tmp, err)
	}
	if namer == nil {
		namer = NewUUIDNamer(dir)
	}
	return &ArtifactStore{tmpDir: tmp, namer: namer}, nil
}

// TmpDir returns the artifact folder.
func (s *ArtifactStore) TmpDir() string { return s.tmpDir }

// WriteJSON marshals v into a fresh <kind>_<uuid>.json file and returns its
// path. json.RawMessage values are written unchanged.
func (s *ArtifactStore) WriteJSON(kind string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", kind, err)
	}
	path := s.namer.Name(kind, ".json")
	if err := s.WriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFile writes data to path atomically (temp file, then rename).
func (s *ArtifactStore) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
