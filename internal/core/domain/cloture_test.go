package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAllowedActions(t *testing.T) {
	tests := []struct {
		name   string
		statut domain.ClotureStatus
		want   domain.Actions
	}{
		{name: "ouverte offers validate only", statut: domain.StatutOuverte, want: domain.Actions{Validate: true}},
		{name: "validee offers close only", statut: domain.StatutValidee, want: domain.Actions{Close: true}},
		{name: "cloturee offers nothing", statut: domain.StatutCloturee, want: domain.Actions{}},
		{name: "unknown status offers nothing", statut: domain.ClotureStatus("archivee"), want: domain.Actions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.AllowedActions(tt.statut)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.statut == domain.StatutOuverte, got.Validate)
			assert.Equal(t, tt.statut == domain.StatutValidee, got.Close)
			if tt.statut == domain.StatutCloturee {
				assert.False(t, got.Any())
				assert.True(t, tt.statut.IsReadOnly())
			}
		})
	}
}

func TestActionsAllows(t *testing.T) {
	a := domain.AllowedActions(domain.StatutOuverte)
	assert.True(t, a.Allows(domain.ActionValidate))
	assert.False(t, a.Allows(domain.ActionClose))
	assert.False(t, a.Allows(domain.ClotureAction("supprimer")))
}

func TestClotureStatus_Next(t *testing.T) {
	next, ok := domain.StatutOuverte.Next()
	assert.True(t, ok)
	assert.Equal(t, domain.StatutValidee, next)

	next, ok = domain.StatutValidee.Next()
	assert.True(t, ok)
	assert.Equal(t, domain.StatutCloturee, next)

	_, ok = domain.StatutCloturee.Next()
	assert.False(t, ok)
}

func TestFinancials_IsProfit(t *testing.T) {
	tests := []struct {
		resultat string
		want     bool
	}{
		{"1500.25", true},
		{"0", true},
		{"-0.01", false},
		{"-42000", false},
	}
	for _, tt := range tests {
		t.Run(tt.resultat, func(t *testing.T) {
			f := domain.Financials{ResultatBrut: decimal.RequireFromString(tt.resultat)}
			assert.Equal(t, tt.want, f.IsProfit())
		})
	}
}

func TestComputeFinancials(t *testing.T) {
	totals := domain.LedgerTotals{
		Sales:         decimal.NewFromInt(10000),
		Purchases:     decimal.NewFromInt(4000),
		Payroll:       decimal.NewFromInt(3500),
		OtherExpenses: decimal.RequireFromString("1200.50"),
		CashMovement:  decimal.NewFromInt(-800),
		Receivables:   decimal.NewFromInt(2500),
		Payables:      decimal.NewFromInt(900),
	}

	f := domain.ComputeFinancials(totals)

	assert.True(t, f.TotalCharges.Equal(decimal.RequireFromString("8700.50")))
	assert.True(t, f.ResultatBrut.Equal(decimal.RequireFromString("1299.50")))
	assert.True(t, f.ChiffreAffaires.Equal(totals.Sales))
	assert.True(t, f.VariationTresorerie.Equal(totals.CashMovement))
	assert.True(t, f.CreancesClients.Equal(totals.Receivables))
	assert.True(t, f.DettesFournisseurs.Equal(totals.Payables))

	loss := domain.ComputeFinancials(domain.LedgerTotals{Sales: decimal.NewFromInt(100), Purchases: decimal.NewFromInt(300)})
	assert.True(t, loss.ResultatBrut.Equal(decimal.NewFromInt(-200)))
	assert.False(t, loss.IsProfit())
}

func TestValidatePeriod(t *testing.T) {
	assert.NoError(t, domain.ValidatePeriod(1, 2024))
	assert.NoError(t, domain.ValidatePeriod(12, 2024))
	assert.Error(t, domain.ValidatePeriod(0, 2024))
	assert.Error(t, domain.ValidatePeriod(13, 2024))
	assert.Error(t, domain.ValidatePeriod(6, 1999))
	assert.Error(t, domain.ValidatePeriod(6, 2101))
}

func TestMonthBounds(t *testing.T) {
	from, to := domain.MonthBounds(12, 2024)
	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), to)

	from, to = domain.MonthBounds(2, 2024)
	assert.Equal(t, 29*24*time.Hour, to.Sub(from))
}

func TestRole_Satisfies(t *testing.T) {
	assert.True(t, domain.RoleAdmin.Satisfies(domain.RoleComptable))
	assert.True(t, domain.RoleComptable.Satisfies(domain.RoleComptable))
	assert.False(t, domain.RoleLecteur.Satisfies(domain.RoleComptable))
	assert.False(t, domain.Role("").Satisfies(domain.RoleLecteur))
	assert.Equal(t, domain.RoleAdmin, domain.ActionClose.RequiredRole())
	assert.Equal(t, domain.RoleComptable, domain.ActionValidate.RequiredRole())
}

func TestAccountCategory_CompatibleWith(t *testing.T) {
	assert.True(t, domain.CategorySales.CompatibleWith(domain.Revenue))
	assert.True(t, domain.CategoryPayable.CompatibleWith(domain.Liability))
	assert.True(t, domain.CategoryNone.CompatibleWith(domain.Equity))
	assert.False(t, domain.CategoryPayroll.CompatibleWith(domain.Revenue))
	assert.False(t, domain.AccountCategory("LIVESTOCK").CompatibleWith(domain.Asset))
}
