// internal/handler/print_handler.go
package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"printer-service/internal/driver/csna2"
	"printer-service/internal/model"
	"printer-service/internal/service"
	"printer-service/internal/utils"
)

// PrintHandler handles print job requests
type PrintHandler struct {
	printService *service.PrintService
	logger       *zap.Logger
}

// NewPrintHandler creates a new print handler
func NewPrintHandler(printService *service.PrintService, logger *zap.Logger) *PrintHandler {
	return &PrintHandler{
		printService: printService,
		logger:       logger.With(zap.String("handler", "print")),
	}
}

// TextRequest is the payload for free-form text printing
type TextRequest struct {
	Text          string `json:"text" binding:"required"`
	Justification string `json:"justification"`
	Underline     string `json:"underline"`
	Emphasized    bool   `json:"emphasized"`
	DoubleWidth   bool   `json:"double_width"`
	DoubleHeight  bool   `json:"double_height"`
	Inverse       bool   `json:"inverse"`
	SmallFont     bool   `json:"small_font"`
}

// BarcodeRequest is the payload for barcode printing
type BarcodeRequest struct {
	System    string `json:"system" binding:"required"`
	Text      string `json:"text" binding:"required,min=1,max=255"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	LeftSpace int    `json:"left_space"`
}

// FeedRequest is the payload for paper feeding
type FeedRequest struct {
	Lines int `json:"lines" binding:"required,min=1,max=255"`
}

// PrintText handles POST /api/v1/printer/text
func (h *PrintHandler) PrintText(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	justification, err := csna2.ParseJustification(req.Justification)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid justification", err)
		return
	}
	underline, err := csna2.ParseUnderline(req.Underline)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid underline", err)
		return
	}

	mode := csna2.PrintMode{
		Emphasized:   req.Emphasized,
		DoubleWidth:  req.DoubleWidth,
		DoubleHeight: req.DoubleHeight,
		Inverse:      req.Inverse,
	}
	if req.SmallFont {
		mode.Font = csna2.FontB
	}

	job, err := h.printService.PrintText(req.Text, justification, underline, mode)
	if err != nil {
		h.respondJobFailure(c, job, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Text printed", job)
}

// PrintReceipt handles POST /api/v1/printer/receipt
func (h *PrintHandler) PrintReceipt(c *gin.Context) {
	var receipt model.Receipt
	if err := c.ShouldBindJSON(&receipt); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	job, err := h.printService.PrintReceipt(receipt)
	if err != nil {
		h.respondJobFailure(c, job, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Receipt printed", job)
}

// PrintBarcode handles POST /api/v1/printer/barcode
func (h *PrintHandler) PrintBarcode(c *gin.Context) {
	var req BarcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	system, err := csna2.ParseBarCodeSystem(req.System)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid barcode system", err)
		return
	}
	width := csna2.BarcodeWidth(req.Width)
	if req.Width != 0 && !width.Valid() {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid barcode width", nil)
		return
	}
	if req.Height < 0 || req.Height > 255 || req.LeftSpace < 0 || req.LeftSpace > 255 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Barcode height and left space must fit in one byte", nil)
		return
	}

	opts := service.BarcodeOptions{
		Width:     width,
		Height:    uint8(req.Height),
		LeftSpace: uint8(req.LeftSpace),
	}
	job, err := h.printService.PrintBarcode(system, req.Text, opts)
	if err != nil {
		h.respondJobFailure(c, job, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Barcode printed", job)
}

// PrintImage handles POST /api/v1/printer/image. The image arrives as a
// multipart upload under the "image" field (PNG, JPEG, GIF or BMP), with an
// optional "mode" form value selecting the raster density.
func (h *PrintHandler) PrintImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Missing image upload", err)
		return
	}
	src, err := file.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Unreadable image upload", err)
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Unreadable image upload", err)
		return
	}

	rasterMode, err := csna2.ParseRasterMode(c.PostForm("mode"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid raster mode", err)
		return
	}

	job, err := h.printService.PrintImage(data, rasterMode)
	if err != nil {
		if job == nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Image not printable", err)
			return
		}
		h.respondJobFailure(c, job, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Image printed", job)
}

// Feed handles POST /api/v1/printer/feed
func (h *PrintHandler) Feed(c *gin.Context) {
	var req FeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	job, err := h.printService.Feed(req.Lines)
	if err != nil {
		if job == nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid feed request", err)
			return
		}
		h.respondJobFailure(c, job, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Paper fed", job)
}

// Reset handles POST /api/v1/printer/reset
func (h *PrintHandler) Reset(c *gin.Context) {
	job, err := h.printService.Reset()
	if err != nil {
		h.respondJobFailure(c, job, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Printer reset", job)
}

// Status handles GET /api/v1/printer/status
func (h *PrintHandler) Status(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Printer status", h.printService.Status())
}

// respondJobFailure maps a failed job onto the right HTTP status. A broken
// session is reported as unavailable so the caller knows to hit reset.
func (h *PrintHandler) respondJobFailure(c *gin.Context, job *model.PrintJob, err error) {
	var terr *csna2.TransmissionError
	if errors.As(err, &terr) || !h.printService.Status().Usable {
		utils.PrinterUnavailableResponse(c, err)
		return
	}
	if job != nil {
		h.logger.Warn("print job failed",
			zap.String("job_id", job.ID.String()),
			zap.Error(err),
		)
	}
	utils.ErrorResponse(c, http.StatusUnprocessableEntity, "Print job failed", err)
}
