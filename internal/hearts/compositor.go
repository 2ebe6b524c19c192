package hearts

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const slotGap = 4

// Asset file names inside an icon set directory.
const (
	FullAsset      = "full_heart.png"
	HalfAsset      = "half_heart.png"
	EmptyAsset     = "empty_heart.png"
	BonusFullAsset = "golden_full_heart.png"
	BonusHalfAsset = "golden_half_heart.png"
)

var iconAssets = map[Icon]string{
	IconFull:      FullAsset,
	IconHalf:      HalfAsset,
	IconEmpty:     EmptyAsset,
	IconBonusFull: BonusFullAsset,
	IconBonusHalf: BonusHalfAsset,
}

// Config selects icon sets and orientation per team.
type Config struct {
	// Dir holds the default icon set; variants live in subdirectories.
	Dir string
	// Variants maps a team name to its icon set subdirectory.
	Variants map[string]string
	// MirroredTeam has its strip flipped horizontally.
	MirroredTeam string
}

// Compositor renders health strips from icon tiles on disk.
type Compositor struct {
	dir          string
	variants     map[string]string
	mirroredTeam string
}

func NewCompositor(cfg Config) *Compositor {
	variants := make(map[string]string, len(cfg.Variants))
	for team, sub := range cfg.Variants {
		variants[team] = sub
	}
	return &Compositor{
		dir:          cfg.Dir,
		variants:     variants,
		mirroredTeam: cfg.MirroredTeam,
	}
}

// SetDir returns the icon set directory used for team. Teams without a
// variant use the default set.
func (c *Compositor) SetDir(team string) string {
	if sub, ok := c.variants[team]; ok && sub != "" {
		return filepath.Join(c.dir, sub)
	}
	return c.dir
}

// Mirrored reports whether team's strip is flipped.
func (c *Compositor) Mirrored(team string) bool {
	return c.mirroredTeam != "" && team == c.mirroredTeam
}

// Render composites the strip for health on a transparent canvas sized
// from the full icon. Any missing icon fails the whole render.
func (c *Compositor) Render(health int, team string) (image.Image, error) {
	dir := c.SetDir(team)
	strip := LayoutFor(health).Strip()

	tiles := make(map[Icon]image.Image, len(iconAssets))
	load := func(icon Icon) (image.Image, error) {
		if img, ok := tiles[icon]; ok {
			return img, nil
		}
		path := filepath.Join(dir, iconAssets[icon])
		img, err := imaging.Open(path)
		if err != nil {
			return nil, fmt.Errorf("load %s icon: %w", icon, err)
		}
		tiles[icon] = img
		return img, nil
	}

	full, err := load(IconFull)
	if err != nil {
		return nil, err
	}
	w, h := full.Bounds().Dx(), full.Bounds().Dy()

	canvas := imaging.New(Slots*(w+slotGap), h, color.NRGBA{})
	for i, icon := range strip {
		tile, err := load(icon)
		if err != nil {
			return nil, err
		}
		canvas = imaging.Paste(canvas, tile, image.Pt(i*(w+slotGap), 0))
	}

	if c.Mirrored(team) {
		canvas = imaging.FlipH(canvas)
	}
	return canvas, nil
}
