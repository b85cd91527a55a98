package systems

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/spaghettifunk/hexwave/engine/core"
	"github.com/spaghettifunk/hexwave/engine/math"
)

// Raster resolution the surface is sampled at before the final scale.
const snapshotBaseSize = 1024

/**
 * @brief Rasterizes a top-down orthographic view of the current
 * displaced surface and writes it to path as a PNG of size x size
 * pixels. Uses the scratch buffer from the last Update, so call it
 * after at least one frame.
 */
func (ss *SurfaceSystem) WriteSnapshot(path string, size int) error {
	if size <= 0 {
		size = snapshotBaseSize
	}
	if len(ss.scratch) == 0 || ss.geometry == nil {
		return fmt.Errorf("no surface data to snapshot")
	}

	min := ss.geometry.Extents.Min
	max := ss.geometry.Extents.Max
	spanX := max.X - min.X
	spanY := max.Y - min.Y
	if spanX <= 0 || spanY <= 0 {
		return fmt.Errorf("degenerate surface extents")
	}

	base := image.NewRGBA(image.Rect(0, 0, snapshotBaseSize, snapshotBaseSize))
	// y is flipped so +y in world space points up in the image.
	toPixel := func(p math.Vec3) (float32, float32) {
		px := (p.X - min.X) / spanX * float32(snapshotBaseSize-1)
		py := (1.0 - (p.Y-min.Y)/spanY) * float32(snapshotBaseSize-1)
		return px, py
	}

	for i := 0; i+2 < len(ss.indices); i += 3 {
		v0 := ss.scratch[ss.indices[i]]
		v1 := ss.scratch[ss.indices[i+1]]
		v2 := ss.scratch[ss.indices[i+2]]
		fillTriangle(base, toPixel, v0, v1, v2)
	}

	out := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(out, out.Bounds(), base, base.Bounds(), xdraw.Over, nil)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, out); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	core.LogInfo("surface snapshot written to %s", path)
	return nil
}

// fillTriangle paints one triangle into img with a flat colour averaged
// from its three vertices. Edge quads are thin; per-pixel interpolation
// would not be visible at this scale.
func fillTriangle(img *image.RGBA, toPixel func(math.Vec3) (float32, float32), v0, v1, v2 math.Vertex3D) {
	x0, y0 := toPixel(v0.Position)
	x1, y1 := toPixel(v1.Position)
	x2, y2 := toPixel(v2.Position)

	avg := v0.Colour.Add(v1.Colour).Add(v2.Colour).MulScalar(1.0 / 3.0)
	c := color.RGBA{
		R: uint8(clamp01(avg.X) * 255),
		G: uint8(clamp01(avg.Y) * 255),
		B: uint8(clamp01(avg.Z) * 255),
		A: 255,
	}

	minX := int(min3(x0, x1, x2))
	maxX := int(max3(x0, x1, x2)) + 1
	minY := int(min3(y0, y1, y2))
	maxY := int(max3(y0, y1, y2)) + 1
	bounds := img.Bounds()
	if minX < bounds.Min.X {
		minX = bounds.Min.X
	}
	if minY < bounds.Min.Y {
		minY = bounds.Min.Y
	}
	if maxX > bounds.Max.X {
		maxX = bounds.Max.X
	}
	if maxY > bounds.Max.Y {
		maxY = bounds.Max.Y
	}

	area := edgeFunction(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}

	for py := minY; py < maxY; py++ {
		for px := minX; px < maxX; px++ {
			cx := float32(px) + 0.5
			cy := float32(py) + 0.5
			w0 := edgeFunction(x1, y1, x2, y2, cx, cy) / area
			w1 := edgeFunction(x2, y2, x0, y0, cx, cy) / area
			w2 := edgeFunction(x0, y0, x1, y1, cx, cy) / area
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				img.SetRGBA(px, py, c)
			}
		}
	}
}

func edgeFunction(ax, ay, bx, by, cx, cy float32) float32 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
