// internal/service/print_service.go
package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"
	"sync"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"

	"printer-service/internal/driver/csna2"
	"printer-service/internal/model"
	"printer-service/internal/utils"
)

// printableDots is the head width; wider images are scaled down to fit.
const printableDots = 384

// inkThreshold is the 8-bit gray level below which a pixel prints as ink.
const inkThreshold = 128

// PrintService owns the single printer session and serializes all access to
// it. The driver itself is not safe for concurrent use, and the device can
// only act on one job at a time anyway.
type PrintService struct {
	mutex   sync.Mutex
	printer *csna2.Printer
	port    io.ByteWriter
	delay   csna2.Delay
	cfg     csna2.Config
	logger  *zap.Logger

	jobsCompleted int64
	jobsFailed    int64
	lastJobAt     time.Time
}

// NewPrintService builds the service and runs the device boot sequence.
func NewPrintService(port io.ByteWriter, delay csna2.Delay, cfg csna2.Config, logger *zap.Logger) (*PrintService, error) {
	printer, err := csna2.New(port, delay, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create printer session: %w", err)
	}
	if err := printer.Init(); err != nil {
		return nil, fmt.Errorf("printer boot sequence: %w", err)
	}

	return &PrintService{
		printer: printer,
		port:    port,
		delay:   delay,
		cfg:     cfg,
		logger:  logger.With(zap.String("service", "print")),
	}, nil
}

// runJob wraps one printer operation with job bookkeeping and logging.
func (ps *PrintService) runJob(jobType model.JobType, fn func() error) (*model.PrintJob, error) {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()

	job := model.NewPrintJob(jobType)
	jl := utils.NewJobLogger(ps.logger, string(jobType), job.ID.String())
	jl.Start()

	err := fn()
	job.Complete(err)
	ps.lastJobAt = job.CompletedAt
	if err != nil {
		ps.jobsFailed++
		jl.Error(err)
		return job, err
	}
	ps.jobsCompleted++
	jl.Success()
	return job, nil
}

// PrintText prints free-form text followed by a paper feed.
func (ps *PrintService) PrintText(text string, justification csna2.Justification, underline csna2.Underline, mode csna2.PrintMode) (*model.PrintJob, error) {
	return ps.runJob(model.JobTypeText, func() error {
		if err := ps.printer.SetJustification(justification); err != nil {
			return err
		}
		if err := ps.printer.SetUnderline(underline); err != nil {
			return err
		}
		if err := ps.printer.SetPrintMode(mode); err != nil {
			return err
		}
		if err := ps.printer.WriteString(text); err != nil {
			return err
		}
		if !strings.HasSuffix(text, "\n") {
			if err := ps.printer.WriteChar('\n'); err != nil {
				return err
			}
		}
		return ps.printer.FeedN(2)
	})
}

// PrintReceipt renders a structured receipt: centered header, one line per
// item with the amount right-aligned, then subtotal, discount and total.
func (ps *PrintService) PrintReceipt(r model.Receipt) (*model.PrintJob, error) {
	return ps.runJob(model.JobTypeReceipt, func() error {
		if err := ps.printer.SetPrintMode(csna2.PrintMode{}); err != nil {
			return err
		}
		width := ps.printer.State().MaxColumn

		if r.Header != "" {
			if err := ps.printer.SetJustification(csna2.JustifyCenter); err != nil {
				return err
			}
			if err := ps.printer.SetPrintMode(csna2.PrintMode{Emphasized: true}); err != nil {
				return err
			}
			if err := ps.printer.WriteString(r.Header + "\n"); err != nil {
				return err
			}
			if err := ps.printer.SetPrintMode(csna2.PrintMode{}); err != nil {
				return err
			}
		}

		if err := ps.printer.SetJustification(csna2.JustifyLeft); err != nil {
			return err
		}
		issued := r.Issued
		if issued.IsZero() {
			issued = time.Now()
		}
		if err := ps.printer.WriteString(issued.Format("2006-01-02 15:04") + "\n"); err != nil {
			return err
		}
		if err := ps.printer.WriteString(strings.Repeat("-", width) + "\n"); err != nil {
			return err
		}

		for _, item := range r.Items {
			name := fmt.Sprintf("%dx %s", item.Quantity, item.Name)
			if err := ps.printer.WriteString(amountLine(name, item.Total(), r.Currency, width)); err != nil {
				return err
			}
		}

		if err := ps.printer.WriteString(strings.Repeat("-", width) + "\n"); err != nil {
			return err
		}
		if !r.Discount.IsZero() {
			if err := ps.printer.WriteString(amountLine("Subtotal", r.Subtotal(), r.Currency, width)); err != nil {
				return err
			}
			if err := ps.printer.WriteString(amountLine("Discount", r.Discount.Neg(), r.Currency, width)); err != nil {
				return err
			}
		}
		if err := ps.printer.SetPrintMode(csna2.PrintMode{Emphasized: true}); err != nil {
			return err
		}
		if err := ps.printer.WriteString(amountLine("Total", r.Total(), r.Currency, width)); err != nil {
			return err
		}
		if err := ps.printer.SetPrintMode(csna2.PrintMode{}); err != nil {
			return err
		}

		if r.Footer != "" {
			if err := ps.printer.SetJustification(csna2.JustifyCenter); err != nil {
				return err
			}
			if err := ps.printer.WriteString(r.Footer + "\n"); err != nil {
				return err
			}
			if err := ps.printer.SetJustification(csna2.JustifyLeft); err != nil {
				return err
			}
		}
		return ps.printer.FeedN(3)
	})
}

// amountLine lays out a label and a money amount on one line, padding the
// middle so the amount ends at the right edge. Lines that cannot fit are
// left to wrap.
func amountLine(label string, amount decimal.Decimal, currency string, width int) string {
	value := amount.StringFixed(2)
	if currency != "" {
		value += " " + currency
	}
	pad := width - len(label) - len(value)
	if pad < 1 {
		pad = 1
	}
	return label + strings.Repeat(" ", pad) + value + "\n"
}

// BarcodeOptions carries the optional geometry overrides for one barcode.
// Zero values leave the session's current setting untouched.
type BarcodeOptions struct {
	Width     csna2.BarcodeWidth
	Height    uint8
	LeftSpace uint8
}

// PrintBarcode prints a barcode in the given symbology, applying any
// geometry overrides first.
func (ps *PrintService) PrintBarcode(system csna2.BarCodeSystem, text string, opts BarcodeOptions) (*model.PrintJob, error) {
	return ps.runJob(model.JobTypeBarcode, func() error {
		if err := ps.printer.SetJustification(csna2.JustifyCenter); err != nil {
			return err
		}
		if opts.Width != 0 {
			if err := ps.printer.SetBarcodeWidth(opts.Width); err != nil {
				return err
			}
		}
		if opts.Height != 0 {
			if err := ps.printer.SetBarcodeHeight(opts.Height); err != nil {
				return err
			}
		}
		if opts.LeftSpace != 0 {
			if err := ps.printer.SetBarcodeLeftSpace(opts.LeftSpace); err != nil {
				return err
			}
		}
		if err := ps.printer.PrintBarcode(system, text); err != nil {
			return err
		}
		if err := ps.printer.SetJustification(csna2.JustifyLeft); err != nil {
			return err
		}
		return ps.printer.Feed()
	})
}

// PrintImage decodes the image bytes, scales the picture to the printable
// width, thresholds it to a monochrome raster and prints it. PNG, JPEG, GIF
// and BMP inputs are accepted.
func (ps *PrintService) PrintImage(data []byte, rasterMode csna2.RasterBitImageMode) (*model.PrintJob, error) {
	raster, err := decodeRaster(data)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return ps.runJob(model.JobTypeImage, func() error {
		if err := ps.printer.PrintBitmap(raster, rasterMode); err != nil {
			return err
		}
		return ps.printer.Feed()
	})
}

// decodeRaster converts encoded image bytes into a monochrome raster that
// fits the head.
func decodeRaster(data []byte) (*csna2.PixelRaster, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Dx() > printableDots {
		img = resize.Resize(printableDots, 0, img, resize.Bilinear)
		bounds = img.Bounds()
	}
	if bounds.Dx() < 1 || bounds.Dy() < 1 || bounds.Dy() > 255 {
		return nil, fmt.Errorf("image size %dx%d not printable", bounds.Dx(), bounds.Dy())
	}

	raster := csna2.NewPixelRaster(bounds.Dx(), bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			g := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			if g.Y < inkThreshold {
				raster.Set(x, y, 0)
			}
		}
	}
	return raster, nil
}

// Feed advances the paper by the given number of lines.
func (ps *PrintService) Feed(lines int) (*model.PrintJob, error) {
	if lines < 1 || lines > 255 {
		return nil, fmt.Errorf("feed lines %d out of range 1-255", lines)
	}
	return ps.runJob(model.JobTypeFeed, func() error {
		return ps.printer.FeedN(uint8(lines))
	})
}

// Reset restores the device defaults. If an earlier transmission failure
// broke the session, a fresh session is built and taken through the boot
// sequence first; this is the recovery path.
func (ps *PrintService) Reset() (*model.PrintJob, error) {
	return ps.runJob(model.JobTypeReset, func() error {
		if ps.printer.Err() != nil {
			ps.logger.Warn("rebuilding broken printer session",
				zap.Error(ps.printer.Err()),
			)
			printer, err := csna2.New(ps.port, ps.delay, ps.cfg, ps.logger)
			if err != nil {
				return err
			}
			if err := printer.Init(); err != nil {
				return err
			}
			ps.printer = printer
			return nil
		}
		return ps.printer.Reset()
	})
}

// Status returns the service's view of the session and job counters.
func (ps *PrintService) Status() model.PrinterStatus {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()

	st := ps.printer.State()
	status := model.PrinterStatus{
		Usable:        ps.printer.Err() == nil,
		Column:        st.Column,
		MaxColumn:     st.MaxColumn,
		JobsCompleted: ps.jobsCompleted,
		JobsFailed:    ps.jobsFailed,
		LastJobAt:     ps.lastJobAt,
	}
	if err := ps.printer.Err(); err != nil {
		status.LastError = err.Error()
	}
	return status
}
