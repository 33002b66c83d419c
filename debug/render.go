package debug

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/tsawler/lattice/model"
	"github.com/tsawler/lattice/tables"
)

// Layer colours.
var (
	Background   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	RegionColor  = color.NRGBA{R: 0x40, G: 0x80, B: 0xff, A: 0x30}
	CellColor    = color.NRGBA{R: 0x20, G: 0xa0, B: 0x40, A: 0xff}
	HRulingColor = color.NRGBA{R: 0xd0, G: 0x20, B: 0x20, A: 0xff}
	VRulingColor = color.NRGBA{R: 0x20, G: 0x20, B: 0xd0, A: 0xff}
	PointColor   = color.NRGBA{A: 0xff}
)

// Render draws a over the analysed page at scale pixels per point.
func Render(a *tables.Analysis, scale float64) (*image.RGBA, error) {
	if a == nil || a.Page == nil {
		return nil, errors.New("debug: no page to render")
	}
	if scale <= 0 {
		return nil, fmt.Errorf("debug: invalid scale %v", scale)
	}

	w := int(math.Ceil(a.Page.Width * scale))
	h := int(math.Ceil(a.Page.Height * scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("debug: empty page %vx%v", a.Page.Width, a.Page.Height)
	}

	c := newCanvas(w, h, scale)
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	stroke := max(1, scale)

	c.layer(RegionColor, func() {
		for _, r := range a.Regions {
			c.rect(r, 0)
		}
	})
	c.layer(CellColor, func() {
		for _, cell := range a.Cells {
			c.outline(cell.BBox, stroke/2)
		}
	})
	c.layer(HRulingColor, func() {
		for _, r := range a.Horizontal {
			c.rect(r.BoundingBox(), stroke/2)
		}
	})
	c.layer(VRulingColor, func() {
		for _, r := range a.Vertical {
			c.rect(r.BoundingBox(), stroke/2)
		}
	})
	c.layer(PointColor, func() {
		for _, p := range a.Intersections.Points() {
			c.rect(model.NewBBoxFromPoints(p, p), 2*stroke)
		}
	})

	return c.img, nil
}

type canvas struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	scale float64
}

func newCanvas(w, h int, scale float64) *canvas {
	return &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		z:     vector.NewRasterizer(w, h),
		scale: scale,
	}
}

// layer accumulates the shapes added by fn into one path and paints it.
func (c *canvas) layer(col color.Color, fn func()) {
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	fn()
	c.z.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

// rect adds b, grown by pad pixels on every side, to the current path.
func (c *canvas) rect(b model.BBox, pad float64) {
	x0 := c.clampX(b.Left()*c.scale - pad)
	y0 := c.clampY(b.Top()*c.scale - pad)
	x1 := c.clampX(b.Right()*c.scale + pad)
	y1 := c.clampY(b.Bottom()*c.scale + pad)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	c.z.MoveTo(x0, y0)
	c.z.LineTo(x1, y0)
	c.z.LineTo(x1, y1)
	c.z.LineTo(x0, y1)
	c.z.ClosePath()
}

func (c *canvas) outline(b model.BBox, pad float64) {
	c.rect(model.NewBBoxFromEdges(b.Left(), b.Top(), b.Right(), b.Top()), pad)
	c.rect(model.NewBBoxFromEdges(b.Left(), b.Bottom(), b.Right(), b.Bottom()), pad)
	c.rect(model.NewBBoxFromEdges(b.Left(), b.Top(), b.Left(), b.Bottom()), pad)
	c.rect(model.NewBBoxFromEdges(b.Right(), b.Top(), b.Right(), b.Bottom()), pad)
}

func (c *canvas) clampX(v float64) float32 {
	return float32(math.Max(0, math.Min(v, float64(c.img.Bounds().Dx()))))
}

func (c *canvas) clampY(v float64) float32 {
	return float32(math.Max(0, math.Min(v, float64(c.img.Bounds().Dy()))))
}

// WritePNG encodes img to w as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("debug: encode png: %w", err)
	}
	return nil
}

// SavePNG renders a and writes it to the named file.
func SavePNG(path string, a *tables.Analysis, scale float64) error {
	img, err := Render(a, scale)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("debug: %w", err)
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("debug: %w", err)
	}
	return nil
}
