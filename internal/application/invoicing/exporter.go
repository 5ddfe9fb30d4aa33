package invoicing

import (
	"fmt"
	"io"
	"strings"

	"github.com/timebill/backend/internal/domain/partner"
)

const (
	exportDateFormat  = "2006-01-02"
	headerTextLines   = 5
	exportFieldSep    = "\t"
	exportRecordSep   = "\n"
	recordHeaderTitle = "HTITLE"
	recordHeaderData  = "HDATA"
	recordLineTitle   = "LTITLE"
	recordLineData    = "LDATA"
)

// Exporter renders a priced document into the flat tab-separated layout the
// document printing pipeline consumes: one HTITLE/HDATA pair for the
// header, one LTITLE row, then one LDATA<n> row per line.
type Exporter struct{}

// Export writes the document to w
func (Exporter) Export(w io.Writer, doc *DocumentPreview) error {
	headerTitles := []string{
		"AccountNumber", "CustomerName",
		"Address1", "Address2", "Address3", "Address4", "Address5", "Address6",
		"DocumentType", "DocumentNumber", "DocumentDate", "DueDate",
		"OriginalInvoice",
		"HeaderText1", "HeaderText2", "HeaderText3", "HeaderText4", "HeaderText5",
	}

	header := []string{
		doc.AccountNumber,
		doc.CustomerName,
	}
	header = append(header, padLines(doc.AddressLines, partner.MaxAddressLines)...)
	header = append(header,
		string(doc.DocumentType),
		doc.DocumentNumber,
		doc.DocumentDate.Format(exportDateFormat),
		doc.DueDate.Format(exportDateFormat),
		doc.OriginalInvoiceNumber,
	)
	header = append(header, padLines(splitHeaderText(doc.HeaderText), headerTextLines)...)

	if err := writeRecord(w, recordHeaderTitle, headerTitles); err != nil {
		return err
	}
	if err := writeRecord(w, recordHeaderData, header); err != nil {
		return err
	}

	lineTitles := []string{
		"LineNo", "Quantity", "Unit", "Description",
		"UnitPrice", "Per", "LinePrice", "PurchaseOrder",
	}
	if err := writeRecord(w, recordLineTitle, lineTitles); err != nil {
		return err
	}

	for i, line := range doc.Lines {
		fields := []string{
			fmt.Sprintf("%d", i+1),
			line.Quantity.String(),
			line.Unit.Code(),
			line.Description,
			line.UnitPrice.StringFixed(2),
			line.PerLabel,
			line.LinePrice.StringFixed(2),
			line.PurchaseOrder,
		}
		tag := fmt.Sprintf("%s%d", recordLineData, i+1)
		if err := writeRecord(w, tag, fields); err != nil {
			return err
		}
	}
	return nil
}

func writeRecord(w io.Writer, tag string, fields []string) error {
	record := append([]string{tag}, fields...)
	_, err := io.WriteString(w, strings.Join(record, exportFieldSep)+exportRecordSep)
	return err
}

// padLines trims or right-pads a slice to exactly n entries
func padLines(lines []string, n int) []string {
	result := make([]string, n)
	for i := 0; i < n && i < len(lines); i++ {
		result[i] = lines[i]
	}
	return result
}

// splitHeaderText breaks free header text into at most headerTextLines
// printable lines
func splitHeaderText(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) > headerTextLines {
		lines = lines[:headerTextLines]
	}
	return lines
}
