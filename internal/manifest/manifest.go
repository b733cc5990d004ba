// internal/manifest/manifest.go
//
// Optional JSON run manifest (--manifest): a record of the input, counts and
// every artifact written during one invocation.
package manifest

import (
	"os"
	"time"

	"github.com/google/uuid"

	"ltrmap/internal/jsonutil"
)

type Manifest struct {
	RunID     string   `json:"run_id"`
	CreatedAt string   `json:"created_at"`
	Input     string   `json:"input"`
	Elements  int      `json:"elements"`
	Cohorts   int      `json:"cohorts"`
	Artifacts []string `json:"artifacts"`
}

// New starts a manifest for one run against the given input file.
func New(input string) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Input:     input,
		Artifacts: []string{},
	}
}

// Add records one written artifact path.
func (m *Manifest) Add(path string) {
	if m == nil || path == "" {
		return
	}
	m.Artifacts = append(m.Artifacts, path)
}

// Write saves the manifest to path as indented JSON.
func (m *Manifest) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jsonutil.EncodePretty(f, m)
}
