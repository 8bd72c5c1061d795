package attributes

import (
	"fmt"
)

const TypePdfInfo = "GenPdfInfo"

// PdfInfo stores the parton distribution function information of the hard scattering.
type PdfInfo struct {
	ID1      int     `json:"id1"`
	ID2      int     `json:"id2"`
	X1       float64 `json:"x1"`
	X2       float64 `json:"x2"`
	ScalePDF float64 `json:"scale_pdf"`
	PDF1     float64 `json:"pdf1"`
	PDF2     float64 `json:"pdf2"`
	PDFID1   int     `json:"pdf_id1"`
	PDFID2   int     `json:"pdf_id2"`
}

// Set assigns all values at once in the conventional order.
func (pi *PdfInfo) Set(id1, id2 int, x1, x2, scalePDF, pdf1, pdf2 float64, pdfID1, pdfID2 int) {
	*pi = PdfInfo{
		ID1:      id1,
		ID2:      id2,
		X1:       x1,
		X2:       x2,
		ScalePDF: scalePDF,
		PDF1:     pdf1,
		PDF2:     pdf2,
		PDFID1:   pdfID1,
		PDFID2:   pdfID2,
	}
}

func (pi *PdfInfo) TypeName() string {
	return TypePdfInfo
}

func (pi *PdfInfo) Describe() string {
	return fmt.Sprintf("%s: %d %d %s %s %s %s %s %d %d",
		TypePdfInfo,
		pi.ID1, pi.ID2,
		formatFloat(pi.X1), formatFloat(pi.X2), formatFloat(pi.ScalePDF),
		formatFloat(pi.PDF1), formatFloat(pi.PDF2),
		pi.PDFID1, pi.PDFID2)
}

func (pi *PdfInfo) MarshalAttribute() ([]byte, error) {
	return json.Marshal(pi)
}

func (pi *PdfInfo) UnmarshalAttribute(data []byte) error {
	return unmarshal(data, pi)
}
