// internal/driver/csna2/cursor_test.go
package csna2

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestByteTransmitTime(t *testing.T) {
	// (11 * 1e6 + 9600) / 19200 rounds to 573us.
	assert.Equal(t, 573*time.Microsecond, byteTransmitTime(19200))
	assert.Equal(t, 1146*time.Microsecond, byteTransmitTime(9600))
}

func TestPrintableBytesCostBaseOnly(t *testing.T) {
	c := newCursor(DefaultConfig())
	base := c.byteTime

	for i := 0; i < c.maxColumn-1; i++ {
		assert.Equal(t, base, c.printCost('x'), "column %d", i)
	}
	assert.False(t, c.afterBreak)
}

func TestLineBreakAfterCharacters(t *testing.T) {
	cfg := DefaultConfig()
	c := newCursor(cfg)
	c.printCost('A')

	want := c.byteTime +
		time.Duration(c.charHeight)*cfg.DotPrintTime +
		time.Duration(c.lineSpacing)*cfg.DotFeedTime
	assert.Equal(t, want, c.printCost('\n'))
	assert.Equal(t, 0, c.column)
	assert.True(t, c.afterBreak)
}

func TestBlankLineIsCheaper(t *testing.T) {
	cfg := DefaultConfig()
	c := newCursor(cfg)
	c.printCost('A')
	c.printCost('\n')

	// No thermal print cycle for an empty line, only paper feed.
	want := c.byteTime + time.Duration(c.charHeight+c.lineSpacing)*cfg.DotFeedTime
	assert.Equal(t, want, c.printCost('\n'))
}

func TestTabAdvancesToNextStop(t *testing.T) {
	tests := []struct {
		column int
		want   int
	}{
		{0, 2},
		{1, 3},
		{3, 5},
		{5, 8},
		{8, 11},
		{17, 23},
	}
	for _, tt := range tests {
		c := newCursor(DefaultConfig())
		c.column = tt.column
		c.afterBreak = false
		c.printCost(ht)
		assert.Equal(t, tt.want, c.column, "tab from column %d", tt.column)
	}
}

func TestForcedWrapMatchesExplicitLineBreak(t *testing.T) {
	cfg := DefaultConfig()

	wrapped := newCursor(cfg)
	for i := 0; i < wrapped.maxColumn; i++ {
		wrapped.printCost('x')
	}
	wrapCost := wrapped.printCost('x')

	broken := newCursor(cfg)
	broken.printCost('x')
	breakCost := broken.printCost('\n')

	assert.Equal(t, breakCost, wrapCost)
	assert.Equal(t, 0, wrapped.column)
	assert.True(t, wrapped.afterBreak)
}

func TestTabBeyondLimitStillWraps(t *testing.T) {
	// A tab can jump the column past the limit; the next byte must wrap.
	c := newCursor(DefaultConfig())
	c.column = 30
	c.afterBreak = false
	c.printCost(ht)
	assert.Greater(t, c.column, c.maxColumn)

	base := c.byteTime
	assert.Greater(t, c.printCost('x'), base)
	assert.Equal(t, 0, c.column)
}

func TestModeMetrics(t *testing.T) {
	tests := []struct {
		name      string
		mode      PrintMode
		width     int
		height    int
		maxColumn int
	}{
		{"font A", PrintMode{}, 12, 24, 32},
		{"font A double width", PrintMode{DoubleWidth: true}, 24, 24, 16},
		{"font A double height", PrintMode{DoubleHeight: true}, 12, 48, 32},
		{"font B", PrintMode{Font: FontB}, 9, 17, 42},
		{"font B quadruple", PrintMode{Font: FontB, DoubleWidth: true, DoubleHeight: true}, 18, 34, 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCursor(DefaultConfig())
			c.applyMode(tt.mode)
			assert.Equal(t, tt.width, c.charWidth)
			assert.Equal(t, tt.height, c.charHeight)
			assert.Equal(t, tt.maxColumn, c.maxColumn)
		})
	}
}
