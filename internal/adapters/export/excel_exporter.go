package export

import (
	"fmt"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/farm_management_app/internal/core/ports/services"
	"github.com/SscSPs/farm_management_app/internal/utils"
	"github.com/xuri/excelize/v2"
)

const xlsxMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var clotureHeadings = []string{
	"Mois", "Statut", "Chiffre d'affaires", "Total achats", "Charges personnel",
	"Autres charges", "Total charges", "Résultat brut", "Variation trésorerie",
	"Créances clients", "Dettes fournisseurs", "Créé par", "Date création",
	"Validé par", "Date validation", "Clôturé par", "Date clôture",
}

// ExcelExporter renders a year of closures into a single-sheet workbook.
type ExcelExporter struct{}

// NewExcelExporter creates an ExcelExporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

var _ portssvc.ClotureExporter = (*ExcelExporter)(nil)

func (e *ExcelExporter) Filename(annee int) string {
	return fmt.Sprintf("clotures_%d.xlsx", annee)
}

func (e *ExcelExporter) MimeType() string {
	return xlsxMimeType
}

// Export writes one header row then one row per closure, in the given order.
func (e *ExcelExporter) Export(annee int, closures []domain.PeriodClosure) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("Clotures %d", annee)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(sheet, "A1", &clotureHeadings); err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(clotureHeadings))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}

	for i, c := range closures {
		row := []interface{}{
			fmt.Sprintf("%02d/%d", c.Mois, c.Annee),
			c.Statut.Label(),
			c.ChiffreAffaires.InexactFloat64(),
			c.TotalAchats.InexactFloat64(),
			c.ChargesPersonnel.InexactFloat64(),
			c.AutresCharges.InexactFloat64(),
			c.TotalCharges.InexactFloat64(),
			c.ResultatBrut.InexactFloat64(),
			c.VariationTresorerie.InexactFloat64(),
			c.CreancesClients.InexactFloat64(),
			c.DettesFournisseurs.InexactFloat64(),
			deref(c.CreeParNom),
			utils.FormatDate(c.DateCreation),
			deref(c.ValideParNom),
			utils.FormatDate(c.DateValidation),
			deref(c.ClotureParNom),
			utils.FormatDate(c.DateCloture),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, fmt.Sprintf("C%d", i+2), fmt.Sprintf("K%d", i+2), amountStyle); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
