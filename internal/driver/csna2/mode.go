// internal/driver/csna2/mode.go
package csna2

import "time"

// PrintMode is the set of style flags held in the device's combined mode
// register. The zero value is font A with every flag off.
type PrintMode struct {
	Font         Font
	Inverse      bool
	UpsideDown   bool
	Emphasized   bool
	DoubleHeight bool
	DoubleWidth  bool
	DeleteLine   bool
}

// Byte encodes the mode into the register layout: bit 0 selects the font,
// bits 1-6 carry one flag each in the order inverse, upside-down,
// emphasized, double-height, double-width, delete-line.
func (m PrintMode) Byte() byte {
	var b byte
	if m.Font == FontB {
		b |= 1 << 0
	}
	if m.Inverse {
		b |= 1 << 1
	}
	if m.UpsideDown {
		b |= 1 << 2
	}
	if m.Emphasized {
		b |= 1 << 3
	}
	if m.DoubleHeight {
		b |= 1 << 4
	}
	if m.DoubleWidth {
		b |= 1 << 5
	}
	if m.DeleteLine {
		b |= 1 << 6
	}
	return b
}

// PrintSettings is the device's heat configuration.
type PrintSettings struct {
	// Dots is the maximum number of head elements fired simultaneously,
	// in units of 8 dots. More dots need a higher peak current but print
	// faster.
	Dots uint8
	// Time is the heating duration in units of 10us. Longer heating gives
	// a darker but slower print.
	Time uint8
	// Interval is the recovery time between firings in units of 10us.
	// Longer recovery gives a clearer print but risks static friction
	// between paper and roll.
	Interval uint8
}

// DefaultPrintSettings returns the device defaults: 11 (88 dots),
// 120 (1.2ms heat), 20 (200us recovery).
func DefaultPrintSettings() PrintSettings {
	return PrintSettings{Dots: 11, Time: 120, Interval: 20}
}

// Bytes encodes the settings as the three raw payload bytes of the heat
// command, in dots/time/interval order.
func (s PrintSettings) Bytes() [3]byte {
	return [3]byte{s.Dots, s.Time, s.Interval}
}

// Config carries the per-device calibration a session needs. Use
// DefaultConfig and override fields as required.
type Config struct {
	// BaudRate of the serial link; fixes the per-byte transmission time
	// for the whole session.
	BaudRate int
	// DotPrintTime is the estimated time to thermally print one dot row.
	// DotFeedTime is the estimated time to feed the paper one dot row.
	// Both are open-loop estimates; tune them against the physical unit
	// if output stalls or garbles.
	DotPrintTime time.Duration
	DotFeedTime  time.Duration
	// LineSpacing is the number of blank dot rows between character lines.
	LineSpacing int
	// BarcodeHeight in dots, restored by Reset.
	BarcodeHeight uint8
	// Heat settings applied by Reset.
	Heat PrintSettings
}

// DefaultConfig returns the calibration for a stock CSN-A2 on a 19200 baud
// TTL link. The dot row times are the commonly used values for this
// mechanism at default heat settings.
func DefaultConfig() Config {
	return Config{
		BaudRate:      19200,
		DotPrintTime:  30 * time.Millisecond,
		DotFeedTime:   2100 * time.Microsecond,
		LineSpacing:   6,
		BarcodeHeight: 162,
		Heat:          DefaultPrintSettings(),
	}
}
