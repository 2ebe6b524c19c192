package testutil

import (
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/disintegration/imaging"
)

// IconColors is the solid color of each icon written by WriteIconSet.
var IconColors = map[string]color.NRGBA{
	"full_heart.png":        {R: 200, A: 255},
	"half_heart.png":        {R: 120, G: 40, A: 255},
	"empty_heart.png":       {R: 60, G: 60, B: 60, A: 255},
	"golden_full_heart.png": {R: 230, G: 190, A: 255},
	"golden_half_heart.png": {R: 150, G: 120, B: 20, A: 255},
}

// WriteIconSet writes one solid w x h PNG per icon into dir.
func WriteIconSet(t testing.TB, dir string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for name, c := range IconColors {
		img := imaging.New(w, h, c)
		if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
			t.Fatalf("write icon %s: %v", name, err)
		}
	}
}

// WriteHeartAssets lays out an assets directory the way the daemon expects it:
// a default icon set under hearts/ plus one set per variant subdirectory.
// It returns the assets root.
func WriteHeartAssets(t testing.TB, w, h int, variants ...string) string {
	t.Helper()
	root := t.TempDir()
	hearts := filepath.Join(root, "hearts")
	WriteIconSet(t, hearts, w, h)
	for _, v := range variants {
		WriteIconSet(t, filepath.Join(hearts, v), w, h)
	}
	return root
}

// ListFiles returns every regular file under root as a sorted slash-separated
// relative path.
func ListFiles(t testing.TB, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	sort.Strings(out)
	return out
}
