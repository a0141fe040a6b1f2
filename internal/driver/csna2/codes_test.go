// internal/driver/csna2/codes_test.go
package csna2

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeTableWireValues(t *testing.T) {
	// The numbering is sparse: spot-check the jump after Iran and the ends.
	assert.Equal(t, byte(0), byte(CodeTableCP437))
	assert.Equal(t, byte(10), byte(CodeTableIran))
	assert.Equal(t, byte(15), byte(CodeTableCP862))
	assert.Equal(t, byte(16), byte(CodeTableWCP1252))
	assert.Equal(t, byte(23), byte(CodeTableISO88591))
	assert.Equal(t, byte(47), byte(CodeTableCP874))
}

func TestBarCodeSystemWireValues(t *testing.T) {
	assert.Equal(t, byte(65), byte(BarCodeUpcA))
	assert.Equal(t, byte(69), byte(BarCodeCode39))
	assert.Equal(t, byte(73), byte(BarCodeCode128))
}

func TestBarCodeSystemMultiLevel(t *testing.T) {
	assert.False(t, BarCodeCode39.MultiLevel())
	assert.False(t, BarCodeItf.MultiLevel())
	assert.False(t, BarCodeCodabar.MultiLevel())
	assert.True(t, BarCodeEan13.MultiLevel())
	assert.True(t, BarCodeCode128.MultiLevel())
}

func TestBarcodeWidthLookup(t *testing.T) {
	assert.False(t, BarcodeWidth(1).Valid())
	assert.False(t, BarcodeWidth(7).Valid())

	assert.True(t, BarcodeWidth4.ModuleWidth().Equal(decimal.RequireFromString("0.560")))
	thin, thick := BarcodeWidth6.ElementWidths()
	assert.True(t, thin.Equal(decimal.RequireFromString("0.750")))
	assert.True(t, thick.Equal(decimal.RequireFromString("2.000")))
}

func TestParseBarCodeSystem(t *testing.T) {
	for in, want := range map[string]BarCodeSystem{
		"upc-a":    BarCodeUpcA,
		"EAN13":    BarCodeEan13,
		"code-128": BarCodeCode128,
		" itf ":    BarCodeItf,
	} {
		got, err := ParseBarCodeSystem(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseBarCodeSystem("qr")
	assert.Error(t, err)
}

func TestParseJustification(t *testing.T) {
	j, err := ParseJustification("Centre")
	require.NoError(t, err)
	assert.Equal(t, JustifyCenter, j)

	j, err = ParseJustification("")
	require.NoError(t, err)
	assert.Equal(t, JustifyLeft, j)

	_, err = ParseJustification("middle")
	assert.Error(t, err)
}

func TestFontMetrics(t *testing.T) {
	w, h := FontA.Metrics()
	assert.Equal(t, 12, w)
	assert.Equal(t, 24, h)
	w, h = FontB.Metrics()
	assert.Equal(t, 9, w)
	assert.Equal(t, 17, h)
}
