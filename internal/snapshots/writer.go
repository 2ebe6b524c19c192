package snapshots

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/preston-bernstein/ktowers-overlay/internal/domain"
	"github.com/preston-bernstein/ktowers-overlay/internal/metrics"
)

// Artifact labels used for metrics.
const (
	ArtifactHealth     = "health"
	ArtifactPAM        = "pam"
	ArtifactPoints     = "points"
	ArtifactSpectating = "spectating"
)

// HealthRenderer composites a player's health strip.
type HealthRenderer interface {
	Render(health int, team string) (image.Image, error)
}

// Writer owns the overlay output tree.
type Writer struct {
	basePath string
	renderer HealthRenderer
	metrics  *metrics.Recorder
}

// NewWriter constructs a writer rooted at basePath.
func NewWriter(basePath string, renderer HealthRenderer, recorder *metrics.Recorder) *Writer {
	return &Writer{
		basePath: basePath,
		renderer: renderer,
		metrics:  recorder,
	}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// Purge removes the output tree. A missing tree is not an error.
func (w *Writer) Purge() error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if w.basePath == "" {
		return fmt.Errorf("output path required")
	}
	return os.RemoveAll(w.basePath)
}

// WriteSnapshot writes every artifact for snap: per player a health image and
// a PAM record, per team a points record, and the spectating marker. The
// first failure aborts the write.
func (w *Writer) WriteSnapshot(snap domain.Snapshot) error {
	if w == nil || w.renderer == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if w.basePath == "" {
		return fmt.Errorf("output path required")
	}

	counts := make(map[string]int, 4)
	for _, team := range snap.Teams {
		for _, p := range team.Players {
			wrote, err := w.writeHealth(team.Name, p)
			if err != nil {
				return err
			}
			countIf(counts, ArtifactHealth, wrote)

			wrote, err = writeFile(PAMPath(w.basePath, team.Name, p.Name), []byte(p.PAM()))
			if err != nil {
				return fmt.Errorf("write pam for %s: %w", p.Name, err)
			}
			countIf(counts, ArtifactPAM, wrote)
		}

		wrote, err := writeFile(PointsPath(w.basePath, team.Name), []byte(strconv.Itoa(team.Points)))
		if err != nil {
			return fmt.Errorf("write points for %s: %w", team.Name, err)
		}
		countIf(counts, ArtifactPoints, wrote)
	}

	wrote, err := writeFile(SpectatingPath(w.basePath), []byte(snap.Spectating()))
	if err != nil {
		return fmt.Errorf("write spectating marker: %w", err)
	}
	countIf(counts, ArtifactSpectating, wrote)

	for artifact, n := range counts {
		w.metrics.RecordArtifacts(artifact, n)
	}
	return nil
}

func (w *Writer) writeHealth(team string, p *domain.Player) (bool, error) {
	img, err := w.renderer.Render(p.Health(), team)
	if err != nil {
		return false, fmt.Errorf("render health for %s: %w", p.Name, err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return false, fmt.Errorf("encode health for %s: %w", p.Name, err)
	}
	wrote, err := writeFile(HealthImagePath(w.basePath, team, p.Name), buf.Bytes())
	if err != nil {
		return false, fmt.Errorf("write health for %s: %w", p.Name, err)
	}
	return wrote, nil
}

func countIf(counts map[string]int, artifact string, wrote bool) {
	if wrote {
		counts[artifact]++
	}
}

// writeFile replaces target through a temp file and rename so the overlay
// never reads a partial file. Unchanged content is left alone and reported
// as not written.
func writeFile(target string, data []byte) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, err
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return false, err
	}
	if err := os.Rename(tmp, target); err != nil {
		return false, err
	}
	return true, nil
}
