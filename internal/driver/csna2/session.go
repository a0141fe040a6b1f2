// internal/driver/csna2/session.go
//
// Driver for the CSN-A2 thermal receipt printer over a half-duplex TTL
// serial link. The link has no flow control and no acknowledgement, so the
// driver paces every byte it sends: it estimates how long the mechanism
// needs to physically act on the byte and blocks the caller for that long,
// keeping the device's small internal buffer from overrunning.
package csna2

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// Delay is the blocking sleep capability injected into a session. It must
// provide microsecond granularity.
type Delay interface {
	Delay(d time.Duration)
}

// bootTime is how long the printer needs after power-on before it accepts
// commands.
const bootTime = 500 * time.Millisecond

// wakeTime is the post-wake settling time; the datasheet requires at least
// 50ms before the device is ready.
const wakeTime = 75 * time.Millisecond

// TransmissionError reports a transport write failure. The command that was
// in flight is truncated on the wire, which leaves the device's protocol
// state machine out of sync: the session is unusable afterwards and the
// caller must build a fresh one and re-run the boot sequence.
type TransmissionError struct {
	Byte byte
	Err  error
}

func (e *TransmissionError) Error() string {
	return fmt.Sprintf("transmit byte 0x%02X: %v", e.Byte, e.Err)
}

func (e *TransmissionError) Unwrap() error { return e.Err }

// Printer is a single exclusive session against one device. It owns the
// injected byte sink and delay capabilities and the cursor simulation; it
// is not safe for concurrent use and the caller must serialize access.
type Printer struct {
	port   io.ByteWriter
	delay  Delay
	logger *zap.Logger

	cfg    Config
	cur    cursor
	mode   PrintMode
	broken error
}

// New creates a session with the given capabilities and calibration. The
// device itself is not touched; call Init for the cold-boot sequence or
// Reset if the device is already awake.
func New(port io.ByteWriter, delay Delay, cfg Config, logger *zap.Logger) (*Printer, error) {
	if port == nil || delay == nil {
		return nil, fmt.Errorf("csna2: transport and delay capabilities are required")
	}
	if cfg.BaudRate <= 0 {
		return nil, fmt.Errorf("csna2: invalid baud rate %d", cfg.BaudRate)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Printer{
		port:   port,
		delay:  delay,
		logger: logger.With(zap.String("driver", "csna2")),
		cfg:    cfg,
		cur:    newCursor(cfg),
	}, nil
}

// Err returns the transmission error that broke the session, if any.
func (p *Printer) Err() error { return p.broken }

// State is a read-only snapshot of the session's cursor simulation.
type State struct {
	Column        int
	MaxColumn     int
	CharWidth     int
	CharHeight    int
	BarcodeHeight uint8
	Mode          PrintMode
}

// State reports the current head simulation and active mode.
func (p *Printer) State() State {
	return State{
		Column:        p.cur.column,
		MaxColumn:     p.cur.maxColumn,
		CharWidth:     p.cur.charWidth,
		CharHeight:    p.cur.charHeight,
		BarcodeHeight: p.cur.barcodeHeight,
		Mode:          p.mode,
	}
}

func (p *Printer) usable() error {
	if p.broken != nil {
		return fmt.Errorf("session broken by earlier failure: %w", p.broken)
	}
	return nil
}

func (p *Printer) fail(b byte, err error) error {
	terr := &TransmissionError{Byte: b, Err: err}
	p.broken = terr
	p.logger.Error("transmission failed, session is dead", zap.Error(terr))
	return terr
}

// writeControl sends one command byte, charging only the link transmission
// time. Bytes that produce physical output go through writeText instead.
func (p *Printer) writeControl(b byte) error {
	if err := p.port.WriteByte(b); err != nil {
		return p.fail(b, err)
	}
	p.delay.Delay(p.cur.byteTime)
	return nil
}

func (p *Printer) writeFrame(frame []byte) error {
	for _, b := range frame {
		if err := p.writeControl(b); err != nil {
			return err
		}
	}
	return nil
}

// writeText sends one printable byte and blocks for the estimated time the
// head needs for it, advancing the cursor simulation.
func (p *Printer) writeText(b byte) error {
	if err := p.port.WriteByte(b); err != nil {
		return p.fail(b, err)
	}
	p.delay.Delay(p.cur.printCost(b))
	return nil
}

// WriteChar prints a single character byte.
func (p *Printer) WriteChar(b byte) error {
	if err := p.usable(); err != nil {
		return err
	}
	return p.writeText(b)
}

// WriteString prints a string byte by byte.
func (p *Printer) WriteString(s string) error {
	if err := p.usable(); err != nil {
		return err
	}
	for i := 0; i < len(s); i++ {
		if err := p.writeText(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// Write implements io.Writer over the paced text path.
func (p *Printer) Write(b []byte) (int, error) {
	if err := p.usable(); err != nil {
		return 0, err
	}
	for i, c := range b {
		if err := p.writeText(c); err != nil {
			return i, err
		}
	}
	return len(b), nil
}

// Printf prints formatted text.
func (p *Printer) Printf(format string, args ...interface{}) error {
	return p.WriteString(fmt.Sprintf(format, args...))
}

// Init runs the cold-boot sequence: wait out the device's boot time, wake
// it, disable its sleep mode, reset the configuration and feed one line.
func (p *Printer) Init() error {
	if err := p.usable(); err != nil {
		return err
	}
	p.logger.Info("running boot sequence")
	p.delay.Delay(bootTime)
	if err := p.Wake(); err != nil {
		return err
	}
	// Disable sleep so the device stays receptive between jobs.
	if err := p.writeFrame(wakeCmd()); err != nil {
		return err
	}
	if err := p.Reset(); err != nil {
		return err
	}
	return p.Feed()
}

// Wake brings the device out of sleep and waits for it to settle.
func (p *Printer) Wake() error {
	if err := p.usable(); err != nil {
		return err
	}
	if err := p.writeFrame(wakeCmd()); err != nil {
		return err
	}
	p.delay.Delay(wakeTime)
	return nil
}

// Reset sends the initialize command and restores the session defaults:
// tab stops every four columns, heat settings, character set, code table
// and barcode height.
func (p *Printer) Reset() error {
	if err := p.usable(); err != nil {
		return err
	}
	if err := p.writeFrame(initializeCmd()); err != nil {
		return err
	}
	if err := p.writeFrame(tabStopsCmd(p.cur.maxColumn)); err != nil {
		return err
	}
	if err := p.SetPrintSettings(p.cfg.Heat); err != nil {
		return err
	}
	if err := p.SetCharacterSet(CharacterSetUSA); err != nil {
		return err
	}
	if err := p.SetCodeTable(CodeTableCP437); err != nil {
		return err
	}
	if err := p.SetBarcodeHeight(p.cfg.BarcodeHeight); err != nil {
		return err
	}
	p.logger.Debug("printer reset to session defaults")
	return nil
}

// SetPrintMode writes the combined mode register followed by the three
// redundant per-flag commands, then recomputes the character metrics and
// column limit for the new mode.
func (p *Printer) SetPrintMode(m PrintMode) error {
	if err := p.usable(); err != nil {
		return err
	}
	if err := p.writeFrame(modeCmd(m.Byte())); err != nil {
		return err
	}
	for _, frame := range modeFixupCmds(m) {
		if err := p.writeFrame(frame); err != nil {
			return err
		}
	}
	p.mode = m
	p.cur.applyMode(m)
	p.logger.Debug("print mode set",
		zap.Uint8("register", m.Byte()),
		zap.Int("max_column", p.cur.maxColumn),
	)
	return nil
}

// SetPrintSettings configures the head's heat parameters.
func (p *Printer) SetPrintSettings(s PrintSettings) error {
	if err := p.usable(); err != nil {
		return err
	}
	return p.writeFrame(heatCmd(s))
}

// SetJustification sets the horizontal placement of subsequent output,
// including bitmaps.
func (p *Printer) SetJustification(j Justification) error {
	if err := p.usable(); err != nil {
		return err
	}
	return p.writeFrame(justifyCmd(j))
}

// SetUnderline sets the underline weight of subsequent text.
func (p *Printer) SetUnderline(u Underline) error {
	if err := p.usable(); err != nil {
		return err
	}
	return p.writeFrame(underlineCmd(u))
}

// SetCharacterSet selects the national character variant.
func (p *Printer) SetCharacterSet(cs CharacterSet) error {
	if err := p.usable(); err != nil {
		return err
	}
	return p.writeFrame(characterSetCmd(cs))
}

// SetCodeTable selects the high-range code page.
func (p *Printer) SetCodeTable(ct CodeTable) error {
	if err := p.usable(); err != nil {
		return err
	}
	return p.writeFrame(codeTableCmd(ct))
}

// SetBarcodeHeight sets the rendered barcode height in dots.
func (p *Printer) SetBarcodeHeight(dots uint8) error {
	if err := p.usable(); err != nil {
		return err
	}
	if err := p.writeFrame(barcodeHeightCmd(dots)); err != nil {
		return err
	}
	p.cur.barcodeHeight = dots
	return nil
}

// SetBarcodeLeftSpace sets the blank space left of the barcode in dots.
func (p *Printer) SetBarcodeLeftSpace(dots uint8) error {
	if err := p.usable(); err != nil {
		return err
	}
	return p.writeFrame(barcodeLeftSpaceCmd(dots))
}

// SetBarcodeWidth sets the printed element width.
func (p *Printer) SetBarcodeWidth(w BarcodeWidth) error {
	if err := p.usable(); err != nil {
		return err
	}
	if !w.Valid() {
		return fmt.Errorf("invalid barcode width %d (valid range 2-6)", w)
	}
	return p.writeFrame(barcodeWidthCmd(w))
}

// PrintBarcode renders the text in the given symbology. The device draws
// the whole barcode before accepting more data, so one lump delay sized to
// the configured barcode height follows the frame. Character legality for
// the chosen symbology is the caller's responsibility.
func (p *Printer) PrintBarcode(system BarCodeSystem, text string) error {
	if err := p.usable(); err != nil {
		return err
	}
	if len(text) == 0 || len(text) > 0xFF {
		return fmt.Errorf("barcode text length %d out of range 1-255", len(text))
	}
	if err := p.writeFrame(barcodeCmd(system, len(text))); err != nil {
		return err
	}
	for i := 0; i < len(text); i++ {
		if err := p.writeControl(text[i]); err != nil {
			return err
		}
	}
	p.delay.Delay(time.Duration(p.cur.barcodeHeight) * p.cur.rowTime())
	p.logger.Debug("barcode printed",
		zap.Uint8("system", byte(system)),
		zap.Int("length", len(text)),
	)
	return nil
}

// PrintBitmap renders a decoded raster through the bit-image command.
// Bitmap output is measured in dots rather than character columns, so the
// cursor simulation is bypassed; a per-row delay models the head stepping
// to the next dot row. Justification still applies to placement.
func (p *Printer) PrintBitmap(r Raster, mode RasterBitImageMode) error {
	if err := p.usable(); err != nil {
		return err
	}
	if err := validateRaster(r); err != nil {
		return err
	}
	stride := (r.Width() + 7) / 8
	if err := p.writeFrame(rasterCmd(mode, stride, r.Height())); err != nil {
		return err
	}
	data := packRaster(r)
	for i, b := range data {
		if err := p.writeControl(b); err != nil {
			return err
		}
		if (i+1)%stride == 0 {
			p.delay.Delay(p.cur.rowTime())
		}
	}
	p.logger.Debug("bitmap printed",
		zap.Int("width", r.Width()),
		zap.Int("height", r.Height()),
		zap.Int("stride", stride),
	)
	return nil
}

// Feed advances the paper by one line.
func (p *Printer) Feed() error { return p.FeedN(1) }

// FeedN advances the paper by the given number of lines.
func (p *Printer) FeedN(lines uint8) error {
	if err := p.usable(); err != nil {
		return err
	}
	if err := p.writeFrame(feedCmd(lines)); err != nil {
		return err
	}
	p.delay.Delay(time.Duration(p.cur.charHeight) * p.cur.dotFeedTime)
	p.cur.breakLine()
	return nil
}
