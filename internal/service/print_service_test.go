// internal/service/print_service_test.go
package service

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"printer-service/internal/driver/csna2"
	"printer-service/internal/model"
)

// memorySink collects everything the driver writes and can be told to start
// failing, which simulates the serial port dropping mid-job.
type memorySink struct {
	bytes   []byte
	failing bool
}

func (m *memorySink) WriteByte(b byte) error {
	if m.failing {
		return errors.New("port gone")
	}
	m.bytes = append(m.bytes, b)
	return nil
}

type noopDelay struct{}

func (noopDelay) Delay(time.Duration) {}

func newTestService(t *testing.T) (*PrintService, *memorySink) {
	t.Helper()
	sink := &memorySink{}
	ps, err := NewPrintService(sink, noopDelay{}, csna2.DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	sink.bytes = nil // drop the boot sequence
	return ps, sink
}

func TestPrintTextCompletesJob(t *testing.T) {
	ps, sink := newTestService(t)

	job, err := ps.PrintText("hello", csna2.JustifyLeft, csna2.UnderlineNone, csna2.PrintMode{})
	require.NoError(t, err)

	assert.Equal(t, model.JobStatusCompleted, job.Status)
	assert.Equal(t, model.JobTypeText, job.Type)
	assert.Contains(t, string(sink.bytes), "hello\n")

	status := ps.Status()
	assert.True(t, status.Usable)
	assert.EqualValues(t, 1, status.JobsCompleted)
	assert.EqualValues(t, 0, status.JobsFailed)
}

func TestPrintReceiptLayout(t *testing.T) {
	ps, sink := newTestService(t)

	receipt := model.Receipt{
		Header:   "CORNER CAFE",
		Currency: "EUR",
		Footer:   "Thank you!",
		Items: []model.ReceiptItem{
			{Name: "Espresso", Quantity: 2, Price: decimal.RequireFromString("2.50")},
			{Name: "Croissant", Quantity: 1, Price: decimal.RequireFromString("1.80")},
		},
		Discount: decimal.RequireFromString("0.30"),
	}

	job, err := ps.PrintReceipt(receipt)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCompleted, job.Status)

	out := string(sink.bytes)
	assert.Contains(t, out, "CORNER CAFE")
	assert.Contains(t, out, "2x Espresso")
	assert.Contains(t, out, "5.00 EUR")
	assert.Contains(t, out, "Subtotal")
	assert.Contains(t, out, "-0.30 EUR")
	assert.Contains(t, out, "6.50 EUR") // 5.00 + 1.80 - 0.30
	assert.Contains(t, out, "Thank you!")
}

func TestAmountLinePadsToWidth(t *testing.T) {
	line := amountLine("Total", decimal.RequireFromString("12.00"), "EUR", 32)

	require.True(t, strings.HasSuffix(line, "12.00 EUR\n"))
	assert.Len(t, strings.TrimSuffix(line, "\n"), 32)
}

func TestPrintBarcodeJob(t *testing.T) {
	ps, sink := newTestService(t)

	job, err := ps.PrintBarcode(csna2.BarCodeCode39, "A-42", BarcodeOptions{
		Width:  csna2.BarcodeWidth3,
		Height: 80,
	})
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCompleted, job.Status)

	assert.Contains(t, string(sink.bytes), string([]byte{0x1D, 0x77, 0x03}))
	assert.Contains(t, string(sink.bytes), string([]byte{0x1D, 0x68, 80}))
	assert.Contains(t, string(sink.bytes), string([]byte{0x1D, 0x6B, 0x45, 0x04}))
	assert.Contains(t, string(sink.bytes), "A-42")
}

func TestPrintImageFromPNG(t *testing.T) {
	ps, sink := newTestService(t)

	img := image.NewGray(image.Rect(0, 0, 16, 4))
	for x := 0; x < 8; x++ {
		for y := 0; y < 4; y++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
	for x := 8; x < 16; x++ {
		for y := 0; y < 4; y++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	job, err := ps.PrintImage(buf.Bytes(), csna2.RasterModeNormal)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCompleted, job.Status)

	// Header for a 16x4 raster followed by four rows of 0xFF 0x00: the left
	// half of the picture is ink, the right half blank.
	want := []byte{0x1D, 0x76, 0x00, 0x00, 0x02, 0x00, 0x04, 0x00}
	for i := 0; i < 4; i++ {
		want = append(want, 0xFF, 0x00)
	}
	assert.Contains(t, string(sink.bytes), string(want))
}

func TestPrintImageRejectsGarbage(t *testing.T) {
	ps, _ := newTestService(t)

	job, err := ps.PrintImage([]byte("not an image"), csna2.RasterModeNormal)
	assert.Error(t, err)
	assert.Nil(t, job)
}

func TestFeedValidatesRange(t *testing.T) {
	ps, _ := newTestService(t)

	_, err := ps.Feed(0)
	assert.Error(t, err)
	_, err = ps.Feed(256)
	assert.Error(t, err)

	job, err := ps.Feed(3)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCompleted, job.Status)
}

func TestResetRebuildsBrokenSession(t *testing.T) {
	ps, sink := newTestService(t)

	sink.failing = true
	job, err := ps.PrintText("x", csna2.JustifyLeft, csna2.UnderlineNone, csna2.PrintMode{})
	require.Error(t, err)
	assert.Equal(t, model.JobStatusFailed, job.Status)
	assert.False(t, ps.Status().Usable)

	// Further jobs fail until the session is rebuilt.
	_, err = ps.Feed(1)
	assert.Error(t, err)

	sink.failing = false
	sink.bytes = nil
	job, err = ps.Reset()
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCompleted, job.Status)
	assert.True(t, ps.Status().Usable)

	// The rebuilt session went through the full boot sequence.
	assert.Contains(t, string(sink.bytes), string([]byte{0x1B, 0x38, 0x00, 0x00}))
	assert.Contains(t, string(sink.bytes), string([]byte{0x1B, 0x40}))

	_, err = ps.PrintText("back", csna2.JustifyLeft, csna2.UnderlineNone, csna2.PrintMode{})
	assert.NoError(t, err)
}

func TestStatusCounters(t *testing.T) {
	ps, sink := newTestService(t)

	_, err := ps.Feed(1)
	require.NoError(t, err)

	sink.failing = true
	_, _ = ps.Feed(1)
	sink.failing = false

	status := ps.Status()
	assert.EqualValues(t, 1, status.JobsCompleted)
	assert.EqualValues(t, 1, status.JobsFailed)
	assert.False(t, status.LastJobAt.IsZero())
}
