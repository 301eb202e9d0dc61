package clotureclient_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	"github.com/SscSPs/farm_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const fakeToken = "fake-token"

// fakeBackend is an in-memory stand-in for the REST API.
type fakeBackend struct {
	t        *testing.T
	server   *httptest.Server
	requests atomic.Int32
	// listDown makes GET /clotures answer 502.
	listDown atomic.Bool

	mu       sync.Mutex
	closures map[string]*domain.PeriodClosure
	user     dto.UserResponse
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{
		t:        t,
		closures: map[string]*domain.PeriodClosure{},
		user: dto.UserResponse{
			UserID:         "u-1",
			OrganisationID: "org-1",
			Name:           "Marie Dupont",
			Email:          "marie@ferme.fr",
			Role:           domain.RoleAdmin,
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", fb.login)
	mux.HandleFunc("GET /api/v1/clotures", fb.authed(fb.list))
	mux.HandleFunc("POST /api/v1/clotures", fb.authed(fb.create))
	mux.HandleFunc("PUT /api/v1/clotures/{id}/valider", fb.authed(fb.transition(domain.ActionValidate)))
	mux.HandleFunc("PUT /api/v1/clotures/{id}/cloturer", fb.authed(fb.transition(domain.ActionClose)))
	mux.HandleFunc("GET /api/v1/clotures/export", fb.authed(fb.export))

	fb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.requests.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) baseURL() string { return fb.server.URL + "/api/v1" }

func (fb *fakeBackend) seed(mois, annee int, statut domain.ClotureStatus, resultat int64) *domain.PeriodClosure {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	c := &domain.PeriodClosure{
		ID:     uuid.NewString(),
		Mois:   mois,
		Annee:  annee,
		Statut: statut,
		Financials: domain.ComputeFinancials(domain.LedgerTotals{
			Sales:     decimal.NewFromInt(1000 + resultat),
			Purchases: decimal.NewFromInt(1000),
		}),
	}
	name := "Marie Dupont"
	now := time.Date(annee, time.Month(mois), 28, 10, 0, 0, 0, time.UTC)
	c.CreeParNom, c.DateCreation = &name, &now
	fb.closures[c.ID] = c
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (fb *fakeBackend) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+fakeToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
			return
		}
		next(w, r)
	}
}

func (fb *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Password != "secret-pass" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
		return
	}
	writeJSON(w, http.StatusOK, dto.AuthResponse{Token: fakeToken, ExpiresAt: time.Now().Add(time.Hour), User: fb.user})
}

func (fb *fakeBackend) list(w http.ResponseWriter, r *http.Request) {
	if fb.listDown.Load() {
		w.WriteHeader(http.StatusBadGateway)
		return
	}
	annee, _ := strconv.Atoi(r.URL.Query().Get("annee"))
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := []dto.ClotureResponse{}
	// Unordered on purpose: the registry sorts.
	for _, c := range fb.closures {
		if c.Annee == annee {
			out = append(out, dto.ToClotureResponse(*c))
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (fb *fakeBackend) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateClotureRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	fb.mu.Lock()
	for _, c := range fb.closures {
		if c.Mois == req.Mois && c.Annee == req.Annee {
			fb.mu.Unlock()
			writeJSON(w, http.StatusConflict, map[string]string{"message": "Une clôture existe déjà pour ce mois"})
			return
		}
	}
	fb.mu.Unlock()
	c := fb.seed(req.Mois, req.Annee, domain.StatutOuverte, 0)
	writeJSON(w, http.StatusCreated, dto.ToClotureResponse(*c))
}

func (fb *fakeBackend) transition(action domain.ClotureAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		c, ok := fb.closures[r.PathValue("id")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "resource not found"})
			return
		}
		if !c.Actions().Allows(action) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "invalid status transition"})
			return
		}
		now := time.Now().UTC()
		name := fb.user.Name
		c.Statut = action.TargetStatus()
		if action == domain.ActionValidate {
			c.ValideParNom, c.DateValidation = &name, &now
		} else {
			c.ClotureParNom, c.DateCloture = &name, &now
		}
		writeJSON(w, http.StatusOK, dto.ToClotureResponse(*c))
	}
}

func (fb *fakeBackend) export(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.ExportFile{
		Filename:      "clotures_" + r.URL.Query().Get("annee") + ".xlsx",
		MimeType:      "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		ContentBase64: "UEsDBA==",
	})
}
