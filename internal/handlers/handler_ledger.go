package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/farm_management_app/internal/core/ports/services"
	"github.com/SscSPs/farm_management_app/internal/dto"
	"github.com/SscSPs/farm_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles the ledger endpoints that feed closure figures.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("", middleware.RequireRole(domain.RoleComptable), h.createAccount)
	}
	rg.POST("/journals", middleware.RequireRole(domain.RoleComptable), h.postJournal)
}

// listAccounts godoc
// @Summary List ledger accounts
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *ledgerHandler) listAccounts(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	accounts, err := h.ledgerService.ListAccounts(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: accounts})
}

// createAccount godoc
// @Summary Create a ledger account
// @Description Categories tell the closure which figure an account feeds.
// @Tags ledger
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} domain.Account
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [post]
func (h *ledgerHandler) createAccount(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	account, err := h.ledgerService.CreateAccount(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, account)
}

// postJournal godoc
// @Summary Post a journal
// @Description Records a balanced double-entry journal. Months whose closure is validated or closed are locked.
// @Tags ledger
// @Accept json
// @Produce json
// @Param journal body dto.CreateJournalRequest true "Journal with its lines"
// @Success 201 {object} domain.Journal
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Accounting period is locked"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journals [post]
func (h *ledgerHandler) postJournal(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	journal, err := h.ledgerService.PostJournal(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to post journal")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal posted",
		slog.String("journal_id", journal.JournalID), slog.Int("lines", len(journal.Transactions)))
	c.JSON(http.StatusCreated, journal)
}
