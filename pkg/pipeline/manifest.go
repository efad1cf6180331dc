package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/keyforge/pkg/buildinfo"
	"github.com/matzehuels/keyforge/pkg/errors"
)

// ManifestName is the file written next to the batch outputs.
const ManifestName = "manifest.json"

// Manifest records what a batch run produced.
type Manifest struct {
	RunID     string          `json:"run_id"`
	Generator string          `json:"generator"`
	Profile   string          `json:"profile,omitempty"`
	Mount     string          `json:"mount,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Keys      []ManifestEntry `json:"keys"`
}

// ManifestEntry describes one key of a run.
type ManifestEntry struct {
	Label    string   `json:"label"`
	SpecHash string   `json:"spec_hash,omitempty"`
	Files    []string `json:"files,omitempty"`
	CacheHit bool     `json:"cache_hit,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// NewManifest starts a manifest with a fresh run id.
func NewManifest(profileName, mount string) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		Generator: buildinfo.Generator(),
		Profile:   profileName,
		Mount:     mount,
		CreatedAt: time.Now().UTC(),
	}
}

// Add records a key and the files written for it.
func (m *Manifest) Add(k *KeyResult, files []string) {
	e := ManifestEntry{
		Label:    k.Label,
		SpecHash: k.SpecHash,
		Files:    files,
		CacheHit: k.CacheHit,
	}
	if k.Err != nil {
		e.Error = errors.UserMessage(k.Err)
	}
	m.Keys = append(m.Keys, e)
}

// WriteArtifacts writes each artifact of k to dir as <label>.<format> and
// returns the file names in format order.
func WriteArtifacts(dir string, k *KeyResult) ([]string, error) {
	formats := make([]string, 0, len(k.Artifacts))
	for f := range k.Artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	files := make([]string, 0, len(formats))
	for _, f := range formats {
		name := k.Label + Extension(f)
		if err := os.WriteFile(filepath.Join(dir, name), k.Artifacts[f], 0o644); err != nil {
			return files, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", name)
		}
		files = append(files, name)
	}
	return files, nil
}

// WriteManifest writes m as indented JSON to dir/manifest.json.
func WriteManifest(dir string, m *Manifest) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode manifest")
	}
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "write manifest")
	}
	return path, nil
}
