package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ClotureStatus is the lifecycle stage of a monthly period close.
// Statuses only move forward: ouverte -> validee -> cloturee.
type ClotureStatus string

const (
	StatutOuverte  ClotureStatus = "ouverte"
	StatutValidee  ClotureStatus = "validee"
	StatutCloturee ClotureStatus = "cloturee"
)

// Year bounds accepted when opening a period.
const (
	MinClotureYear = 2000
	MaxClotureYear = 2100
)

// IsValid reports whether s is one of the three known statuses.
func (s ClotureStatus) IsValid() bool {
	switch s {
	case StatutOuverte, StatutValidee, StatutCloturee:
		return true
	}
	return false
}

// Next returns the status reached by the single forward transition out of s.
// The second value is false for cloturee, which is terminal.
func (s ClotureStatus) Next() (ClotureStatus, bool) {
	switch s {
	case StatutOuverte:
		return StatutValidee, true
	case StatutValidee:
		return StatutCloturee, true
	}
	return "", false
}

// IsReadOnly reports whether a closure in this status accepts no further mutation.
func (s ClotureStatus) IsReadOnly() bool {
	return s == StatutCloturee
}

// Label returns the French display label for the status.
func (s ClotureStatus) Label() string {
	switch s {
	case StatutOuverte:
		return "Ouverte"
	case StatutValidee:
		return "Validée"
	case StatutCloturee:
		return "Clôturée"
	}
	return string(s)
}

// ClotureAction names a mutating action on a closure.
type ClotureAction string

const (
	ActionValidate ClotureAction = "valider"
	ActionClose    ClotureAction = "cloturer"
)

// Actions lists which mutating actions may be offered for a closure.
type Actions struct {
	Validate bool `json:"validate"`
	Close    bool `json:"close"`
}

// AllowedActions is the single source of truth for transition legality.
// Both the server and the client derive their guards from it.
func AllowedActions(s ClotureStatus) Actions {
	return Actions{
		Validate: s == StatutOuverte,
		Close:    s == StatutValidee,
	}
}

// Any reports whether at least one action is offered.
func (a Actions) Any() bool {
	return a.Validate || a.Close
}

// Allows reports whether the given action is offered.
func (a Actions) Allows(action ClotureAction) bool {
	switch action {
	case ActionValidate:
		return a.Validate
	case ActionClose:
		return a.Close
	}
	return false
}

// TargetStatus returns the status an action moves a closure to.
func (action ClotureAction) TargetStatus() ClotureStatus {
	if action == ActionClose {
		return StatutCloturee
	}
	return StatutValidee
}

// Financials holds the server-computed figures of a period.
type Financials struct {
	ChiffreAffaires     decimal.Decimal `json:"chiffre_affaires"`
	TotalAchats         decimal.Decimal `json:"total_achats"`
	ChargesPersonnel    decimal.Decimal `json:"charges_personnel"`
	AutresCharges       decimal.Decimal `json:"autres_charges"`
	TotalCharges        decimal.Decimal `json:"total_charges"`
	ResultatBrut        decimal.Decimal `json:"resultat_brut"`
	VariationTresorerie decimal.Decimal `json:"variation_tresorerie"`
	CreancesClients     decimal.Decimal `json:"creances_clients"`
	DettesFournisseurs  decimal.Decimal `json:"dettes_fournisseurs"`
}

// IsProfit reports whether the gross result is non-negative. Zero counts as a profit.
func (f Financials) IsProfit() bool {
	return !f.ResultatBrut.IsNegative()
}

// PeriodClosure is the monthly close record of one organisation.
type PeriodClosure struct {
	ID             string        `json:"id"`
	OrganisationID string        `json:"-"`
	Mois           int           `json:"mois"`
	Annee          int           `json:"annee"`
	Statut         ClotureStatus `json:"statut"`
	Financials

	CreeParID      string     `json:"-"`
	CreeParNom     *string    `json:"cree_par_nom"`
	DateCreation   *time.Time `json:"date_creation"`
	ValideParID    *string    `json:"-"`
	ValideParNom   *string    `json:"valide_par_nom"`
	DateValidation *time.Time `json:"date_validation"`
	ClotureParID   *string    `json:"-"`
	ClotureParNom  *string    `json:"cloture_par_nom"`
	DateCloture    *time.Time `json:"date_cloture"`
}

// Actions returns the mutating actions offered for the closure.
func (p PeriodClosure) Actions() Actions {
	return AllowedActions(p.Statut)
}

// Period returns the half-open time range [first day of month, first day of next month).
func (p PeriodClosure) Period() (time.Time, time.Time) {
	return MonthBounds(p.Mois, p.Annee)
}

// MonthBounds returns the half-open UTC range covering the given calendar month.
func MonthBounds(mois, annee int) (time.Time, time.Time) {
	from := time.Date(annee, time.Month(mois), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// ValidatePeriod checks a (mois, annee) pair before a closure is opened.
func ValidatePeriod(mois, annee int) error {
	if mois < 1 || mois > 12 {
		return fmt.Errorf("mois must be between 1 and 12, got %d", mois)
	}
	if annee < MinClotureYear || annee > MaxClotureYear {
		return fmt.Errorf("annee must be between %d and %d, got %d", MinClotureYear, MaxClotureYear, annee)
	}
	return nil
}

// LedgerTotals are the raw ledger aggregates for one month, as read from the journal.
type LedgerTotals struct {
	Sales         decimal.Decimal
	Purchases     decimal.Decimal
	Payroll       decimal.Decimal
	OtherExpenses decimal.Decimal
	CashMovement  decimal.Decimal
	Receivables   decimal.Decimal
	Payables      decimal.Decimal
}

// ComputeFinancials derives the closure figures from ledger aggregates.
func ComputeFinancials(t LedgerTotals) Financials {
	totalCharges := t.Purchases.Add(t.Payroll).Add(t.OtherExpenses)
	return Financials{
		ChiffreAffaires:     t.Sales,
		TotalAchats:         t.Purchases,
		ChargesPersonnel:    t.Payroll,
		AutresCharges:       t.OtherExpenses,
		TotalCharges:        totalCharges,
		ResultatBrut:        t.Sales.Sub(totalCharges),
		VariationTresorerie: t.CashMovement,
		CreancesClients:     t.Receivables,
		DettesFournisseurs:  t.Payables,
	}
}
