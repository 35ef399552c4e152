package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrInvalid = errors.New("invalid viewer config")

type Color struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
}

// Layout holds the gallery page metrics in logical pixels.
type Layout struct {
	PagePadding     float32 `json:"page_padding"`
	HeadingHeight   float32 `json:"heading_height"`
	MaxContentWidth float32 `json:"max_content_width"`
	MediumWidth     float32 `json:"medium_width"` // two columns from here
	LargeWidth      float32 `json:"large_width"`  // three columns from here
	Gap             float32 `json:"gap"`
	CardPadding     float32 `json:"card_padding"`
	CanvasHeight    float32 `json:"canvas_height"`
	TitleHeight     float32 `json:"title_height"`
	HeadingFont     float32 `json:"heading_font"`   // font size of the page heading
	HeadingMargin   float32 `json:"heading_margin"` // below the heading line
	TitleFont       float32 `json:"title_font"`
	TitleMargin     float32 `json:"title_margin"` // above the card title line
	MinZoom         float32 `json:"min_zoom"`
	MaxZoom         float32 `json:"max_zoom"`
	ScrollStep      float32 `json:"scroll_step"`
	ZoomStep        float32 `json:"zoom_step"`
}

type Colors struct {
	Page        Color `json:"page"`
	Card        Color `json:"card"`
	Placeholder Color `json:"placeholder"`
	Heading     Color `json:"heading"`
	Title       Color `json:"title"`
}

type Viewer struct {
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	Title        string `json:"title"`
	AssetDir     string `json:"asset_dir"`
	VSync        bool   `json:"vsync"`
	Debug        bool   `json:"debug"`
	Layout       Layout `json:"layout"`
	Colors       Colors `json:"colors"`
}

// Default returns the viewer settings. There is no external configuration
// surface, these values are the configuration.
func Default() Viewer {
	return Viewer{
		WindowWidth:  1280,
		WindowHeight: 900,
		Title:        "3D Model Previews",
		AssetDir:     "public",
		VSync:        true,
		Layout: Layout{
			PagePadding:     24,
			HeadingHeight:   48,
			MaxContentWidth: 1024,
			MediumWidth:     768,
			LargeWidth:      1024,
			Gap:             24,
			CardPadding:     16,
			CanvasHeight:    320,
			TitleHeight:     44,
			HeadingFont:     24,
			HeadingMargin:   16,
			TitleFont:       18,
			TitleMargin:     16,
			MinZoom:         0.5,
			MaxZoom:         3,
			ScrollStep:      40,
			ZoomStep:        0.1,
		},
		Colors: Colors{
			Page:        Color{0.953, 0.957, 0.965}, // gray-100
			Card:        Color{1, 1, 1},
			Placeholder: Color{0.898, 0.906, 0.922}, // gray-200
			Heading:     Color{0.122, 0.161, 0.216}, // gray-800
			Title:       Color{0.216, 0.255, 0.318}, // gray-700
		},
	}
}

func (v Viewer) Validate() error {
	if v.WindowWidth <= 0 || v.WindowHeight <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, v.WindowWidth, v.WindowHeight)
	}
	if v.AssetDir == "" {
		return fmt.Errorf("%w: empty asset dir", ErrInvalid)
	}
	l := v.Layout
	if l.CanvasHeight <= 0 {
		return fmt.Errorf("%w: canvas height %v", ErrInvalid, l.CanvasHeight)
	}
	if l.HeadingMargin >= l.HeadingHeight || l.TitleMargin >= l.TitleHeight {
		return fmt.Errorf("%w: text margins leave no room for text", ErrInvalid)
	}
	if l.MediumWidth > l.LargeWidth {
		return fmt.Errorf("%w: medium breakpoint %v above large %v", ErrInvalid, l.MediumWidth, l.LargeWidth)
	}
	if l.MinZoom <= 0 || l.MinZoom > l.MaxZoom {
		return fmt.Errorf("%w: zoom range [%v, %v]", ErrInvalid, l.MinZoom, l.MaxZoom)
	}
	return nil
}

// FindAssetDir looks for dir next to the executable, then relative to the
// working directory. The input is returned unchanged when neither exists.
func FindAssetDir(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	var candidates []string
	if exePath, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exePath), dir))
	}
	candidates = append(candidates, dir)

	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return p
		}
	}
	return dir
}
