// internal/driver/csna2/bitmap.go
package csna2

import "fmt"

// inkCutoff is the brightness threshold on the raw 32-bit color scale.
// Pixels strictly below it print as ink; lighter ones stay blank.
const inkCutoff uint32 = 0x0000FFFF

// Raster is the decoded pixel grid the bitmap encoder consumes. Image file
// decoding happens outside the driver; ColorAt returns the raw color value
// of a pixel on a 0..0xFFFFFFFF scale.
type Raster interface {
	Width() int
	Height() int
	ColorAt(x, y int) uint32
}

// PixelRaster is a plain in-memory Raster.
type PixelRaster struct {
	w, h int
	pix  []uint32
}

// NewPixelRaster allocates an all-white raster of the given size.
func NewPixelRaster(width, height int) *PixelRaster {
	pix := make([]uint32, width*height)
	for i := range pix {
		pix[i] = 0xFFFFFFFF
	}
	return &PixelRaster{w: width, h: height, pix: pix}
}

func (r *PixelRaster) Width() int  { return r.w }
func (r *PixelRaster) Height() int { return r.h }

func (r *PixelRaster) ColorAt(x, y int) uint32 { return r.pix[y*r.w+x] }

// Set assigns the raw color value of one pixel.
func (r *PixelRaster) Set(x, y int, color uint32) { r.pix[y*r.w+x] = color }

func (r *PixelRaster) String() string {
	return fmt.Sprintf("PixelRaster(%dx%d)", r.w, r.h)
}

// packRaster packs the raster into the device's row format: one bit per
// pixel, most significant bit first, each row padded with zero bits to a
// byte boundary.
func packRaster(r Raster) []byte {
	width, height := r.Width(), r.Height()
	stride := (width + 7) / 8
	data := make([]byte, stride*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if r.ColorAt(x, y) < inkCutoff {
				data[y*stride+x/8] |= 0x80 >> (x % 8)
			}
		}
	}
	return data
}

// validateRaster checks the raster against the head's addressable area.
func validateRaster(r Raster) error {
	width, height := r.Width(), r.Height()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("empty raster %dx%d", width, height)
	}
	if width > dotWidth {
		return fmt.Errorf("raster %d dots wide exceeds the %d dot head", width, dotWidth)
	}
	if height > 0xFF {
		return fmt.Errorf("raster %d dots tall exceeds the addressable height of %d", height, 0xFF)
	}
	return nil
}
