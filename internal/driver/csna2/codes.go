// internal/driver/csna2/codes.go
package csna2

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Font selects one of the two built-in character generators. Font A prints
// 12x24 dot glyphs, font B 9x17.
type Font byte

const (
	FontA Font = iota
	FontB
)

// Metrics returns the glyph cell size of the font in dots, before any
// double-width or double-height mode is applied.
func (f Font) Metrics() (width, height int) {
	if f == FontB {
		return 9, 17
	}
	return 12, 24
}

// Justification selects the horizontal placement of subsequent output.
type Justification byte

const (
	JustifyLeft   Justification = 0
	JustifyCenter Justification = 1
	JustifyRight  Justification = 2
)

// ParseJustification maps a configuration string onto a Justification code.
func ParseJustification(s string) (Justification, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return JustifyLeft, nil
	case "center", "centre":
		return JustifyCenter, nil
	case "right":
		return JustifyRight, nil
	default:
		return JustifyLeft, fmt.Errorf("unknown justification %q (use left|center|right)", s)
	}
}

// Underline selects the underline weight of subsequent text.
type Underline byte

const (
	UnderlineNone   Underline = 0
	UnderlineNormal Underline = 1
	UnderlineDouble Underline = 2
)

// ParseUnderline maps a configuration string onto an Underline code.
func ParseUnderline(s string) (Underline, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return UnderlineNone, nil
	case "normal", "single":
		return UnderlineNormal, nil
	case "double":
		return UnderlineDouble, nil
	default:
		return UnderlineNone, fmt.Errorf("unknown underline %q (use none|normal|double)", s)
	}
}

// RasterBitImageMode selects the dot density of raster bit-image output.
//
//	Mode          Vertical   Horizontal
//	Normal        203.2dpi   203.2dpi
//	DoubleWidth   203.2dpi   101.6dpi
//	DoubleHeight  101.6dpi   203.2dpi
//	Quadruple     101.6dpi   101.6dpi
type RasterBitImageMode byte

const (
	RasterModeNormal RasterBitImageMode = iota
	RasterModeDoubleWidth
	RasterModeDoubleHeight
	RasterModeQuadruple
)

// ParseRasterMode maps a configuration string onto a RasterBitImageMode.
func ParseRasterMode(s string) (RasterBitImageMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return RasterModeNormal, nil
	case "double_width", "double-width":
		return RasterModeDoubleWidth, nil
	case "double_height", "double-height":
		return RasterModeDoubleHeight, nil
	case "quadruple":
		return RasterModeQuadruple, nil
	default:
		return RasterModeNormal, fmt.Errorf("unknown raster mode %q", s)
	}
}

// CharacterSet selects the national glyph variant for the low ASCII range.
type CharacterSet byte

const (
	CharacterSetUSA CharacterSet = iota
	CharacterSetFrance
	CharacterSetGermany
	CharacterSetUK
	CharacterSetDenmarkI
	CharacterSetSweden
	CharacterSetItaly
	CharacterSetSpainI
	CharacterSetJapan
	CharacterSetNorway
	CharacterSetDenmarkII
	CharacterSetSpainII
	CharacterSetLatinAmerica
	CharacterSetKorea
	CharacterSetSloveniaCroatia
	CharacterSetChina
)

// CodeTable selects the code page used for the high byte range. The device
// assigns these numbers sparsely, so every variant carries its wire value
// explicitly.
type CodeTable byte

const (
	CodeTableCP437     CodeTable = 0
	CodeTableKatakana  CodeTable = 1
	CodeTableCP850     CodeTable = 2
	CodeTableCP860     CodeTable = 3
	CodeTableCP863     CodeTable = 4
	CodeTableCP865     CodeTable = 5
	CodeTableWCP1251   CodeTable = 6
	CodeTableCP866     CodeTable = 7
	CodeTableMIK       CodeTable = 8
	CodeTableCP755     CodeTable = 9
	CodeTableIran      CodeTable = 10
	CodeTableCP862     CodeTable = 15
	CodeTableWCP1252   CodeTable = 16
	CodeTableWCP1253   CodeTable = 17
	CodeTableCP852     CodeTable = 18
	CodeTableCP858     CodeTable = 19
	CodeTableIranII    CodeTable = 20
	CodeTableLatvian   CodeTable = 21
	CodeTableCP864     CodeTable = 22
	CodeTableISO88591  CodeTable = 23
	CodeTableCP737     CodeTable = 24
	CodeTableWCP1257   CodeTable = 25
	CodeTableThai      CodeTable = 26
	CodeTableCP720     CodeTable = 27
	CodeTableCP855     CodeTable = 28
	CodeTableCP857     CodeTable = 29
	CodeTableWCP1250   CodeTable = 30
	CodeTableCP775     CodeTable = 31
	CodeTableWCP1254   CodeTable = 32
	CodeTableWCP1255   CodeTable = 33
	CodeTableWCP1256   CodeTable = 34
	CodeTableWCP1258   CodeTable = 35
	CodeTableISO88592  CodeTable = 36
	CodeTableISO88593  CodeTable = 37
	CodeTableISO88594  CodeTable = 38
	CodeTableISO88595  CodeTable = 39
	CodeTableISO88596  CodeTable = 40
	CodeTableISO88597  CodeTable = 41
	CodeTableISO88598  CodeTable = 42
	CodeTableISO88599  CodeTable = 43
	CodeTableISO885915 CodeTable = 44
	CodeTableThaiII    CodeTable = 45
	CodeTableCP856     CodeTable = 46
	CodeTableCP874     CodeTable = 47
)

// BarCodeSystem selects the barcode symbology. The wire values start at 65;
// the device also accepts a legacy 0-based numbering that this driver does
// not use.
type BarCodeSystem byte

const (
	BarCodeUpcA    BarCodeSystem = 65
	BarCodeUpcE    BarCodeSystem = 66
	BarCodeEan13   BarCodeSystem = 67
	BarCodeEan8    BarCodeSystem = 68
	BarCodeCode39  BarCodeSystem = 69
	BarCodeItf     BarCodeSystem = 70
	BarCodeCodabar BarCodeSystem = 71
	BarCodeCode93  BarCodeSystem = 72
	BarCodeCode128 BarCodeSystem = 73
)

// MultiLevel reports whether the symbology encodes more than two bar widths.
// Code39, ITF and Codabar are binary-level; the rest are multi-level.
func (s BarCodeSystem) MultiLevel() bool {
	switch s {
	case BarCodeCode39, BarCodeItf, BarCodeCodabar:
		return false
	default:
		return true
	}
}

// ParseBarCodeSystem maps a configuration string onto a BarCodeSystem.
func ParseBarCodeSystem(s string) (BarCodeSystem, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UPC-A", "UPC_A", "UPCA":
		return BarCodeUpcA, nil
	case "UPC-E", "UPC_E", "UPCE":
		return BarCodeUpcE, nil
	case "EAN13", "EAN-13":
		return BarCodeEan13, nil
	case "EAN8", "EAN-8":
		return BarCodeEan8, nil
	case "CODE39", "CODE-39":
		return BarCodeCode39, nil
	case "ITF":
		return BarCodeItf, nil
	case "CODABAR":
		return BarCodeCodabar, nil
	case "CODE93", "CODE-93":
		return BarCodeCode93, nil
	case "CODE128", "CODE-128":
		return BarCodeCode128, nil
	default:
		return 0, fmt.Errorf("unknown barcode system %q", s)
	}
}

// BarCodeSpecialCharacter values are the Code128 control characters listed
// in the device documentation.
type BarCodeSpecialCharacter byte

const (
	BarCodeShift     BarCodeSpecialCharacter = 0x53
	BarCodeCodeA     BarCodeSpecialCharacter = 0x41
	BarCodeCodeB     BarCodeSpecialCharacter = 0x42
	BarCodeCodeC     BarCodeSpecialCharacter = 0x43
	BarCodeFnc1      BarCodeSpecialCharacter = 0x31
	BarCodeFnc2      BarCodeSpecialCharacter = 0x32
	BarCodeFnc3      BarCodeSpecialCharacter = 0x33
	BarCodeFnc4      BarCodeSpecialCharacter = 0x34
	BarCodeCurlyOpen BarCodeSpecialCharacter = 0x7B
)

// BarcodeWidth selects the printed element width. Valid wire values are 2-6.
type BarcodeWidth byte

const (
	BarcodeWidth2 BarcodeWidth = 2
	BarcodeWidth3 BarcodeWidth = 3
	BarcodeWidth4 BarcodeWidth = 4
	BarcodeWidth5 BarcodeWidth = 5
	BarcodeWidth6 BarcodeWidth = 6
)

// barcodeWidthMM is the fixed width lookup from the device documentation,
// in millimeters. Module width applies to multi-level symbologies; the
// thin/thick pair applies to binary-level ones.
var barcodeWidthMM = map[BarcodeWidth]struct{ module, thin, thick decimal.Decimal }{
	BarcodeWidth2: {d("0.250"), d("0.250"), d("0.625")},
	BarcodeWidth3: {d("0.375"), d("0.375"), d("1.000")},
	BarcodeWidth4: {d("0.560"), d("0.560"), d("1.250")},
	BarcodeWidth5: {d("0.625"), d("0.625"), d("1.625")},
	BarcodeWidth6: {d("0.750"), d("0.750"), d("2.000")},
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Valid reports whether the width is one the device accepts.
func (w BarcodeWidth) Valid() bool {
	_, ok := barcodeWidthMM[w]
	return ok
}

// ModuleWidth returns the printed module width in millimeters for
// multi-level symbologies.
func (w BarcodeWidth) ModuleWidth() decimal.Decimal {
	return barcodeWidthMM[w].module
}

// ElementWidths returns the thin and thick element widths in millimeters
// for binary-level symbologies.
func (w BarcodeWidth) ElementWidths() (thin, thick decimal.Decimal) {
	e := barcodeWidthMM[w]
	return e.thin, e.thick
}
