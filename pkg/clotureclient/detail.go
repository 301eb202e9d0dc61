package clotureclient

import (
	"fmt"
	"strings"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	"github.com/SscSPs/farm_management_app/internal/utils"
	"github.com/shopspring/decimal"
)

// Chart colors.
const (
	ColorRevenue   = "#4CAF50"
	ColorPurchases = "#FF6384"
	ColorPayroll   = "#36A2EB"
	ColorOther     = "#FFCE56"
	ColorProfit    = "#2E7D32"
	ColorLoss      = "#C62828"
)

// SeriesPoint is one slice or bar of a chart.
type SeriesPoint struct {
	Key   string
	Label string
	Value decimal.Decimal
	Color string
}

// Detail holds the presentational values derived from one closure.
type Detail struct {
	Cloture Cloture

	// Positif is true when resultat_brut is zero or more.
	Positif  bool
	Resultat string

	// ExpenseBreakdown lists achats, personnel and autres in that order,
	// leaving out the ones equal to zero.
	ExpenseBreakdown []SeriesPoint

	// Comparative is the five-bar series ending with |resultat_brut|.
	Comparative []SeriesPoint

	Actions  domain.Actions
	ReadOnly bool

	format utils.AmountFormatter
}

// NewDetail derives the detail view of c using the given amount formatter.
func NewDetail(c Cloture, format utils.AmountFormatter) Detail {
	positif := c.IsProfit()
	resultColor := ColorLoss
	if positif {
		resultColor = ColorProfit
	}

	expenses := []SeriesPoint{
		{Key: "achats", Label: "Achats", Value: c.TotalAchats, Color: ColorPurchases},
		{Key: "personnel", Label: "Charges de personnel", Value: c.ChargesPersonnel, Color: ColorPayroll},
		{Key: "autres", Label: "Autres charges", Value: c.AutresCharges, Color: ColorOther},
	}
	breakdown := make([]SeriesPoint, 0, len(expenses))
	for _, p := range expenses {
		if !p.Value.IsZero() {
			breakdown = append(breakdown, p)
		}
	}

	comparative := []SeriesPoint{
		{Key: "chiffre_affaires", Label: "Chiffre d'affaires", Value: c.ChiffreAffaires, Color: ColorRevenue},
		expenses[0],
		expenses[1],
		expenses[2],
		{Key: "resultat", Label: "Résultat brut", Value: c.ResultatBrut.Abs(), Color: resultColor},
	}

	return Detail{
		Cloture:          c,
		Positif:          positif,
		Resultat:         format.FormatSigned(c.ResultatBrut),
		ExpenseBreakdown: breakdown,
		Comparative:      comparative,
		Actions:          c.Actions(),
		ReadOnly:         c.Statut.IsReadOnly(),
		format:           format,
	}
}

// Markdown renders the detail as a markdown document for terminals.
func (d Detail) Markdown() string {
	c := d.Cloture
	f := d.format
	var b strings.Builder

	fmt.Fprintf(&b, "# Clôture %02d/%d\n\n", c.Mois, c.Annee)
	fmt.Fprintf(&b, "**Statut :** %s", c.Statut.Label())
	if d.ReadOnly {
		b.WriteString(" (Lecture Seule)")
	}
	b.WriteString("\n\n")

	badge := "Perte"
	if d.Positif {
		badge = "Bénéfice"
	}
	fmt.Fprintf(&b, "**Résultat brut :** %s (%s)\n\n", d.Resultat, badge)

	b.WriteString("## Compte de résultat\n\n| Poste | Montant |\n|---|---:|\n")
	for _, row := range []struct {
		label string
		value decimal.Decimal
	}{
		{"Chiffre d'affaires", c.ChiffreAffaires},
		{"Achats", c.TotalAchats},
		{"Charges de personnel", c.ChargesPersonnel},
		{"Autres charges", c.AutresCharges},
		{"Total charges", c.TotalCharges},
	} {
		fmt.Fprintf(&b, "| %s | %s |\n", row.label, f.Format(row.value))
	}

	b.WriteString("\n## Trésorerie et tiers\n\n| Poste | Montant |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Variation de trésorerie | %s |\n", f.FormatSigned(c.VariationTresorerie))
	fmt.Fprintf(&b, "| Créances clients | %s |\n", f.Format(c.CreancesClients))
	fmt.Fprintf(&b, "| Dettes fournisseurs | %s |\n", f.Format(c.DettesFournisseurs))

	if len(d.ExpenseBreakdown) > 0 {
		total := decimal.Zero
		for _, p := range d.ExpenseBreakdown {
			total = total.Add(p.Value)
		}
		b.WriteString("\n## Répartition des charges\n\n| Poste | Montant | Part |\n|---|---:|---:|\n")
		for _, p := range d.ExpenseBreakdown {
			share := "-"
			if !total.IsZero() {
				share = p.Value.Div(total).Mul(decimal.NewFromInt(100)).StringFixed(1) + " %"
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", p.Label, f.Format(p.Value), share)
		}
	}

	b.WriteString("\n## Historique\n\n| Étape | Par | Date |\n|---|---|---|\n")
	fmt.Fprintf(&b, "| Création | %s | %s |\n", nameOrDash(c.CreeParNom), utils.FormatDate(c.DateCreation))
	fmt.Fprintf(&b, "| Validation | %s | %s |\n", nameOrDash(c.ValideParNom), utils.FormatDate(c.DateValidation))
	fmt.Fprintf(&b, "| Clôture | %s | %s |\n", nameOrDash(c.ClotureParNom), utils.FormatDate(c.DateCloture))

	switch {
	case d.Actions.Validate:
		fmt.Fprintf(&b, "\nAction disponible : `cloture validate %s`\n", c.ID)
	case d.Actions.Close:
		fmt.Fprintf(&b, "\nAction disponible : `cloture close %s` (définitive)\n", c.ID)
	}
	return b.String()
}

func nameOrDash(name *string) string {
	if name == nil || *name == "" {
		return "-"
	}
	return *name
}
