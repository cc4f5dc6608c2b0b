package shield

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pkgz/fileutils"
)

// ArtifactName is the file name of the saved classifier in the model data directory
const ArtifactName = "spam_detector_model.json"

// artifactVersion is bumped on any incompatible change of saved models
const artifactVersion = 1

type artifact struct {
	Version   int             `json:"version"`
	ModelID   string          `json:"model_id"`
	Kind      string          `json:"kind"`
	Metrics   Metrics         `json:"metrics"`
	CreatedAt time.Time       `json:"created_at"`
	Checksum  string          `json:"checksum"` // sha256 of compacted payload
	Payload   json.RawMessage `json:"payload"`
}

// Save writes the classifier to path. Data written to a temp file in the same directory first,
// and renamed to path after that, so path never contains a partially written artifact.
func (c *Classifier) Save(path string) error {
	if c == nil || c.model == nil {
		return ErrModelUnavailable
	}
	payload, err := json.Marshal(c.model)
	if err != nil {
		return fmt.Errorf("can't marshal %s model: %w", c.model.Kind(), err)
	}
	payload, err = compactJSON(payload)
	if err != nil {
		return fmt.Errorf("can't compact %s model: %w", c.model.Kind(), err)
	}
	data, err := json.Marshal(artifact{
		Version:   artifactVersion,
		ModelID:   c.id,
		Kind:      c.model.Kind(),
		Metrics:   c.metrics,
		CreatedAt: c.trainedAt,
		Checksum:  checksum(payload),
		Payload:   payload,
	})
	if err != nil {
		return fmt.Errorf("can't marshal artifact: %w", err)
	}

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("can't make model dir %s: %w", dir, err)
	}
	tmp, err := fileutils.TempFileName(dir, ArtifactName+".*.tmp")
	if err != nil {
		return fmt.Errorf("can't make temp file name in %s: %w", dir, err)
	}
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("can't write %s: %w", tmp, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("can't rename %s to %s: %w", tmp, path, err)
	}
	log.Printf("[INFO] model %s saved to %s, %d bytes", c.id, path, len(data))
	return nil
}

// LoadClassifier reads a classifier saved by Save. Artifacts of other versions, unknown kinds
// and artifacts with checksum mismatch are rejected. Predict uses extractor, zero Extractor if nil.
func LoadClassifier(path string, extractor *Extractor) (*Classifier, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path from configured data dir
	if err != nil {
		return nil, fmt.Errorf("can't read model %s: %w", path, err)
	}
	var a artifact
	if err = json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("can't unmarshal model %s: %w", path, err)
	}
	if a.Version != artifactVersion {
		return nil, fmt.Errorf("unsupported model version %d, expected %d", a.Version, artifactVersion)
	}
	if len(a.Payload) == 0 {
		return nil, errors.New("model payload is empty")
	}
	payload, err := compactJSON(a.Payload)
	if err != nil {
		return nil, fmt.Errorf("can't compact payload: %w", err)
	}
	if sum := checksum(payload); sum != a.Checksum {
		return nil, fmt.Errorf("model checksum mismatch, %s != %s", sum, a.Checksum)
	}

	model, err := NewModel(a.Kind)
	if err != nil {
		return nil, err
	}
	if err = model.UnmarshalJSON(payload); err != nil {
		return nil, fmt.Errorf("can't restore %s model: %w", a.Kind, err)
	}
	if extractor == nil {
		extractor = &Extractor{}
	}
	log.Printf("[INFO] model %s (%s) loaded from %s, trained at %s", a.ModelID, a.Kind, path, a.CreatedAt.Format(time.RFC3339))
	return &Classifier{id: a.ModelID, model: model, metrics: a.Metrics, trainedAt: a.CreatedAt, extractor: extractor}, nil
}

func compactJSON(data []byte) ([]byte, error) {
	buf := bytes.Buffer{}
	if err := json.Compact(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
