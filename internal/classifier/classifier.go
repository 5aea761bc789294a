// Package classifier implements the exported image-classification model: a
// compact linear classifier over a downsampled grayscale grid, serialized as
// JSON so the registry stores an inspectable artifact.
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"model-deploy-service/internal/core/domain"
)

// Model is the on-disk classifier. Weights is one vector per label over the
// flattened InputSize x InputSize grayscale grid, Bias one scalar per label.
type Model struct {
	Name      string      `json:"name"`
	Labels    []string    `json:"labels"`
	InputSize int         `json:"input_size"`
	Weights   [][]float64 `json:"weights"`
	Bias      []float64   `json:"bias"`
}

// Validate checks structural consistency of a loaded model.
func (m *Model) Validate() error {
	if len(m.Labels) == 0 {
		return errors.New("model has no labels")
	}
	if m.InputSize <= 0 {
		return errors.New("model input size must be positive")
	}
	if len(m.Weights) != len(m.Labels) || len(m.Bias) != len(m.Labels) {
		return fmt.Errorf("model has %d labels but %d weight rows and %d biases",
			len(m.Labels), len(m.Weights), len(m.Bias))
	}
	dim := m.InputSize * m.InputSize
	for i, row := range m.Weights {
		if len(row) != dim {
			return fmt.Errorf("weight row %d has %d values, want %d", i, len(row), dim)
		}
	}
	return nil
}

// Export writes the model to path, creating parent directories.
func Export(path string, m *Model) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("validate model: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create model dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

// Load reads a model from path. A missing file is reported as
// domain.ErrAssetNotFound so callers can surface a clear message before any
// remote call is attempted.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, path)
		}
		return nil, fmt.Errorf("read model: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return &m, nil
}

// Predict classifies a decoded image and returns the winning label with its
// softmax probability.
func (m *Model) Predict(img image.Image) (string, float64, error) {
	if err := m.Validate(); err != nil {
		return "", 0, err
	}

	features := Features(img, m.InputSize)

	scores := make([]float64, len(m.Labels))
	for i, row := range m.Weights {
		s := m.Bias[i]
		for j, w := range row {
			s += w * features[j]
		}
		scores[i] = s
	}

	probs := softmax(scores)
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return m.Labels[best], probs[best], nil
}

// Features downsamples img onto a size x size grid and returns the flattened
// grayscale intensities in [0,1], row major. Cells outside the source bounds
// clamp to the nearest pixel.
func Features(img image.Image, size int) []float64 {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	out := make([]float64, size*size)
	for gy := 0; gy < size; gy++ {
		for gx := 0; gx < size; gx++ {
			// Nearest-pixel sampling keeps Predict deterministic across
			// decoder implementations.
			sx := bounds.Min.X + gx*w/size
			sy := bounds.Min.Y + gy*h/size
			r, g, b, _ := img.At(sx, sy).RGBA()
			// Rec. 601 luma on 16-bit channel values.
			gray := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 65535.0
			out[gy*size+gx] = gray
		}
	}
	return out
}

func softmax(scores []float64) []float64 {
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	sum := 0.0
	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = math.Exp(s - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
