package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/go-pdf/fpdf"

	apperrors "notedesk/internal/errors"
)

// Capabilities describes which optional rendering backends this build
// carries. Callers check these before starting an export so a missing
// backend is reported up front rather than mid-document.
type Capabilities struct {
	PDF    bool
	Images bool
}

var (
	capsOnce sync.Once
	caps     Capabilities
)

// Detect resolves the build's rendering capabilities once.
func Detect() Capabilities {
	capsOnce.Do(func() {
		caps = Capabilities{PDF: true, Images: true}
	})
	return caps
}

// IsExportAvailable reports whether document export is supported.
func IsExportAvailable() bool {
	return Detect().PDF
}

const mmPerPoint = 25.4 / 72

// PDFRenderer writes block lists to a PDF file. Image blocks are placed at
// a fixed size given in points at construction.
type PDFRenderer struct {
	pageSize string
	imageW   float64
	imageH   float64
}

// NewPDFRenderer creates a renderer for the given page size ("Letter" or
// "A4") and image dimensions in points.
func NewPDFRenderer(pageSize string, imageWidth, imageHeight int) *PDFRenderer {
	return &PDFRenderer{
		pageSize: pageSize,
		imageW:   float64(imageWidth) * mmPerPoint,
		imageH:   float64(imageHeight) * mmPerPoint,
	}
}

// Render writes the blocks to outPath. The document is built in a temp
// file next to the destination and renamed into place on success, so a
// failed export never leaves a truncated file at the target path.
func (r *PDFRenderer) Render(blocks []Block, outPath string) error {
	if !IsExportAvailable() {
		return apperrors.New(apperrors.ErrCapabilityUnavailable, "pdf rendering is not available")
	}

	doc := fpdf.New("P", "mm", r.pageSize, "")
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont("Helvetica", "", 8)
		doc.CellFormat(0, 10, strconv.Itoa(doc.PageNo()), "", 0, "C", false, 0, "")
	})
	doc.AddPage()

	for _, block := range blocks {
		switch block.Kind {
		case KindHeading:
			doc.SetFont("Helvetica", "B", 14)
			doc.MultiCell(0, 8, block.Text, "", "C", false)
			doc.Ln(4)
		case KindSubheading:
			doc.SetFont("Helvetica", "B", 12)
			doc.MultiCell(0, 7, block.Text, "", "L", false)
			doc.Ln(2)
		case KindBody:
			doc.SetFont("Helvetica", "", 12)
			doc.MultiCell(0, 6, block.Text, "", "L", false)
			doc.Ln(2)
		case KindImage:
			r.placeImage(doc, block.Path)
		case KindPageBreak:
			doc.AddPage()
		}
	}
	if err := doc.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrExportFailed, "failed to build document", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".export-*.pdf")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrExportFailed, "failed to create output file", err)
	}
	tmpPath := tmp.Name()
	if err := doc.OutputAndClose(tmp); err != nil {
		os.Remove(tmpPath)
		return apperrors.Wrap(apperrors.ErrExportFailed, "failed to write document", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return apperrors.Wrap(apperrors.ErrExportFailed, fmt.Sprintf("failed to move document to %s", outPath), err)
	}
	return nil
}

// placeImage draws one sketch page, breaking to a new document page when
// the image would not fit below the current position. Unreadable image
// files are skipped.
func (r *PDFRenderer) placeImage(doc *fpdf.Fpdf, path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	_, pageH := doc.GetPageSize()
	_, _, _, bottom := doc.GetMargins()
	if doc.GetY()+r.imageH > pageH-bottom {
		doc.AddPage()
	}
	doc.ImageOptions(path, doc.GetX(), doc.GetY(), r.imageW, r.imageH, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	doc.Ln(4)
}
