// internal/driver/csna2/command.go
package csna2

// Wire protocol prefixes. ESC and GS announce that the following bytes form
// a control command rather than printable text.
const (
	esc byte = 0x1B
	gs  byte = 0x1D
	ht  byte = 0x09
)

// tabWidth is the fixed tab stop pitch in character columns.
const tabWidth = 4

func initializeCmd() []byte { return []byte{esc, '@'} }

func wakeCmd() []byte { return []byte{esc, 0x38, 0x00, 0x00} }

// tabStopsCmd configures tab stops at every multiple of tabWidth up to the
// given column count, terminated by a zero byte.
func tabStopsCmd(maxColumn int) []byte {
	frame := []byte{esc, 'D'}
	for i := 1; i < maxColumn/tabWidth; i++ {
		frame = append(frame, byte(i*tabWidth))
	}
	return append(frame, 0x00)
}

func modeCmd(mode byte) []byte { return []byte{esc, '!', mode} }

// modeFixupCmds returns the three single-purpose style commands emitted
// after every mode register write. The combined register does not reliably
// honor these bits in hardware, so they are additionally set through their
// dedicated commands, always in the order inverse, upside-down, emphasized.
func modeFixupCmds(m PrintMode) [][]byte {
	return [][]byte{
		{gs, 0x42, flagByte(m.Inverse)},
		{esc, 0x7B, flagByte(m.UpsideDown)},
		{esc, 0x45, flagByte(m.Emphasized)},
	}
}

func flagByte(on bool) byte {
	if on {
		return 1
	}
	return 0
}

func heatCmd(s PrintSettings) []byte {
	p := s.Bytes()
	return []byte{esc, 0x37, p[0], p[1], p[2]}
}

func justifyCmd(j Justification) []byte { return []byte{esc, 'a', byte(j)} }

func underlineCmd(u Underline) []byte { return []byte{esc, '-', byte(u)} }

func characterSetCmd(cs CharacterSet) []byte { return []byte{esc, 'R', byte(cs)} }

func codeTableCmd(ct CodeTable) []byte { return []byte{esc, 't', byte(ct)} }

func barcodeHeightCmd(dots uint8) []byte { return []byte{gs, 0x68, dots} }

func barcodeLeftSpaceCmd(dots uint8) []byte { return []byte{gs, 0x78, dots} }

func barcodeWidthCmd(w BarcodeWidth) []byte { return []byte{gs, 0x77, byte(w)} }

func barcodeCmd(system BarCodeSystem, textLen int) []byte {
	return []byte{gs, 'k', byte(system), byte(textLen)}
}

func feedCmd(lines uint8) []byte { return []byte{esc, 'J', lines} }

// rasterCmd builds the bit-image header. The device's addressable height
// fits one byte, so the two high-byte fields stay zero.
func rasterCmd(mode RasterBitImageMode, bytesPerRow, height int) []byte {
	return []byte{gs, 'v', 0, byte(mode), byte(bytesPerRow), 0, byte(height), 0}
}
