// internal/driver/csna2/cursor.go
package csna2

import "time"

// dotWidth is the maximum number of horizontal dots the head can address.
const dotWidth = 384

// frameBits is the number of bits on the wire per data byte at the device's
// word format, including start, stop and parity framing.
const frameBits = 11

// byteTransmitTime returns the fixed cost of pushing one byte down the link
// at the given baud rate, using ceiling division. 573us at 19200 baud.
func byteTransmitTime(baud int) time.Duration {
	us := (frameBits*1_000_000 + baud/2) / baud
	return time.Duration(us) * time.Microsecond
}

// cursor simulates the physical position of the print head. The link has no
// acknowledgement or flow control, so pacing is derived entirely from this
// state: the current character column, whether the previous byte ended a
// line, and the dot metrics of the active font and mode.
type cursor struct {
	column        int
	maxColumn     int
	charWidth     int
	charHeight    int
	lineSpacing   int
	afterBreak    bool
	barcodeHeight uint8

	byteTime     time.Duration
	dotPrintTime time.Duration
	dotFeedTime  time.Duration
}

func newCursor(cfg Config) cursor {
	c := cursor{
		lineSpacing:   cfg.LineSpacing,
		afterBreak:    true,
		barcodeHeight: cfg.BarcodeHeight,
		byteTime:      byteTransmitTime(cfg.BaudRate),
		dotPrintTime:  cfg.DotPrintTime,
		dotFeedTime:   cfg.DotFeedTime,
	}
	c.applyMode(PrintMode{})
	return c
}

// applyMode recomputes the character cell metrics and the derived column
// limit together, so they can never be observed out of step.
func (c *cursor) applyMode(m PrintMode) {
	w, h := m.Font.Metrics()
	if m.DoubleWidth {
		w *= 2
	}
	if m.DoubleHeight {
		h *= 2
	}
	c.charWidth = w
	c.charHeight = h
	c.maxColumn = dotWidth / w
}

// printCost returns how long the mechanism needs to act on one printable
// byte and advances the simulated head position accordingly.
//
// A line break, or a forced wrap when the column limit has been reached,
// costs a full line: feeding a blank line takes only feed time, while
// completing a line that holds characters takes print time for the glyph
// rows plus feed time for the spacing rows. Any other byte costs just the
// transmission time; a horizontal tab additionally skips ahead to the next
// tab stop.
func (c *cursor) printCost(b byte) time.Duration {
	wait := c.byteTime
	if b == '\n' || c.column >= c.maxColumn {
		if c.afterBreak {
			wait += time.Duration(c.charHeight+c.lineSpacing) * c.dotFeedTime
		} else {
			wait += time.Duration(c.charHeight)*c.dotPrintTime +
				time.Duration(c.lineSpacing)*c.dotFeedTime
		}
		c.column = 0
		c.afterBreak = true
		return wait
	}
	if b == ht {
		c.column += c.column/tabWidth + 1
	}
	c.column++
	c.afterBreak = false
	return wait
}

// rowTime is the cost of moving the head past one printed dot row, used for
// bitmap rows and barcode rendering.
func (c *cursor) rowTime() time.Duration {
	return c.dotPrintTime + c.dotFeedTime
}

// breakLine resets the head to the start of a fresh line without any cost
// accounting, for commands that feed paper themselves.
func (c *cursor) breakLine() {
	c.column = 0
	c.afterBreak = true
}
