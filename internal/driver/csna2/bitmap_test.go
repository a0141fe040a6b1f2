// internal/driver/csna2/bitmap_test.go
package csna2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func blackRaster(w, h int) *PixelRaster {
	r := NewPixelRaster(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.Set(x, y, 0)
		}
	}
	return r
}

func TestPackRasterPadsRowTail(t *testing.T) {
	// 10 ink bits plus 6 padding zeros, MSB first: 0xFF 0xC0.
	data := packRaster(blackRaster(10, 1))
	assert.Equal(t, []byte{0xFF, 0xC0}, data)
}

func TestPackRasterMSBFirst(t *testing.T) {
	r := NewPixelRaster(8, 1)
	r.Set(0, 0, 0)
	r.Set(7, 0, 0)
	assert.Equal(t, []byte{0x81}, packRaster(r))
}

func TestPackRasterCutoff(t *testing.T) {
	r := NewPixelRaster(2, 1)
	r.Set(0, 0, inkCutoff-1) // darkest value that still prints
	r.Set(1, 0, inkCutoff)   // exactly at the cutoff stays blank
	assert.Equal(t, []byte{0x80}, packRaster(r))
}

func TestPackRasterMultiRow(t *testing.T) {
	r := NewPixelRaster(9, 2)
	r.Set(0, 0, 0)
	r.Set(8, 1, 0)
	// Stride 2: each row ends on a byte boundary.
	assert.Equal(t, []byte{0x80, 0x00, 0x00, 0x80}, packRaster(r))
}

func TestValidateRaster(t *testing.T) {
	assert.NoError(t, validateRaster(NewPixelRaster(384, 255)))
	assert.Error(t, validateRaster(NewPixelRaster(0, 1)))
	assert.Error(t, validateRaster(NewPixelRaster(385, 1)))
	assert.Error(t, validateRaster(NewPixelRaster(8, 256)))
}
