package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

// utf8BOM marks the file as UTF-8 for spreadsheet tools
const utf8BOM = "\uFEFF"

var progressHeader = []string{
	"Vagão",
	"Total",
	"Produzido",
	"Medido",
	"A Comprometer",
	"Faltante a Produzir",
	"Faltante a Medir",
}

// WriteProgress writes one row per unit in the column layout of the
// production-remaining report
func WriteProgress(w io.Writer, progress []entities.UnitProgress) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(progressHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, p := range progress {
		row := []string{
			fmt.Sprintf("Vagão %d", p.UnitNumber),
			strconv.Itoa(p.Total),
			strconv.Itoa(p.Produced),
			strconv.Itoa(p.Measured),
			strconv.Itoa(p.ToBeCommitted),
			strconv.Itoa(p.RemainingToProduce),
			strconv.Itoa(p.RemainingToMeasure),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
