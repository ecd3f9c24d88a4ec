package canvas

import (
	"fmt"
	"image"
	_ "image/png" // PNG decoder for sprites
	"os"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// halfBlock draws the top pixel as foreground and the bottom one as background.
const halfBlock = '▀'

// alphaCutoff is the opacity under which a pixel keeps the cell background.
const alphaCutoff = 0x8000

type imageCache struct {
	mu     sync.Mutex
	images map[string]image.Image
}

func newImageCache() *imageCache {
	return &imageCache{images: make(map[string]image.Image)}
}

func (c *imageCache) load(path string) (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if img, ok := c.images[path]; ok {
		return img, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	c.images[path] = img
	return img, nil
}

// Image implements Renderer. The image is scaled to w x h cells, two
// pixel rows per cell.
func (g *Grid) Image(path string, x, y, w, h int) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	img, err := g.images.load(path)
	if err != nil {
		return err
	}
	g.DrawImage(img, x, y, w, h)
	return nil
}

// DrawImage draws an already decoded image.
func (g *Grid) DrawImage(img image.Image, x, y, w, h int) {
	//nolint:gosec // dimensions are small, no overflow risk
	scaled := resize.Resize(uint(w), uint(h*2), img, resize.NearestNeighbor)
	b := scaled.Bounds()

	for row := range h {
		for col := range w {
			c := g.at(x+col, y+row)
			if c == nil {
				continue
			}
			top, topOK := pixel(scaled, b.Min.X+col, b.Min.Y+row*2)
			bottom, bottomOK := pixel(scaled, b.Min.X+col, b.Min.Y+row*2+1)
			switch {
			case topOK && bottomOK:
				*c = cell{r: halfBlock, fg: top, bg: bottom}
			case topOK:
				*c = cell{r: halfBlock, fg: top, bg: c.bg}
			case bottomOK:
				*c = cell{r: '▄', fg: bottom, bg: c.bg}
			}
		}
	}
}

func pixel(img image.Image, x, y int) (Color, bool) {
	rgba := img.At(x, y)
	if _, _, _, a := rgba.RGBA(); a < alphaCutoff {
		return "", false
	}
	cf, ok := colorful.MakeColor(rgba)
	if !ok {
		return "", false
	}
	return Color(cf.Clamped().Hex()), true
}
