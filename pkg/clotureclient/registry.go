package clotureclient

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
)

// ClotureAPI is the subset of Client used by Registry.
type ClotureAPI interface {
	ListClotures(ctx context.Context, annee int) ([]Cloture, error)
	CreateCloture(ctx context.Context, mois, annee int) (*Cloture, error)
	ValidateCloture(ctx context.Context, id string) (*Cloture, error)
	CloseCloture(ctx context.Context, id string) (*Cloture, error)
}

var _ ClotureAPI = (*Client)(nil)

// ConfirmFunc asks the user to confirm the irreversible close of c.
type ConfirmFunc func(c Cloture) bool

// Registry holds the closures of the selected year. The list is replaced
// wholesale by every load, never merged. Requests are neither retried nor
// de-duplicated.
type Registry struct {
	api ClotureAPI

	mu    sync.RWMutex
	year  int
	items []Cloture
}

// NewRegistry creates an empty registry.
func NewRegistry(api ClotureAPI) *Registry {
	return &Registry{api: api}
}

// Year returns the loaded year, or 0 before the first Load.
func (r *Registry) Year() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.year
}

// Items returns a copy of the held list, most recent month first.
func (r *Registry) Items() []Cloture {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Cloture, len(r.items))
	copy(out, r.items)
	return out
}

// Find returns the held closure with the given id.
func (r *Registry) Find(id string) (Cloture, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.items {
		if c.ID == id {
			return c, true
		}
	}
	return Cloture{}, false
}

func (r *Registry) has(mois, annee int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if annee != r.year {
		return false
	}
	for _, c := range r.items {
		if c.Mois == mois && c.Annee == annee {
			return true
		}
	}
	return false
}

// Load fetches the closures of year and replaces the held list. On failure
// the previous list is kept.
func (r *Registry) Load(ctx context.Context, year int) ([]Cloture, error) {
	if year < domain.MinClotureYear || year > domain.MaxClotureYear {
		return nil, ErrInvalidPeriod
	}
	items, err := r.api.ListClotures(ctx, year)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Cloture{}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Mois > items[j].Mois })

	r.mu.Lock()
	r.year = year
	r.items = items
	r.mu.Unlock()
	return r.Items(), nil
}

// Create opens the closure of (mois, annee). A month already present in the
// loaded list is rejected with ErrPeriodExists before any request is sent.
func (r *Registry) Create(ctx context.Context, mois, annee int) (*Cloture, error) {
	if err := domain.ValidatePeriod(mois, annee); err != nil {
		return nil, ErrInvalidPeriod
	}
	if r.has(mois, annee) {
		return nil, ErrPeriodExists
	}
	created, err := r.api.CreateCloture(ctx, mois, annee)
	if err != nil {
		return nil, err
	}
	return r.refresh(ctx, created, annee)
}

// Validate moves an ouverte closure to validee.
func (r *Registry) Validate(ctx context.Context, id string) (*Cloture, error) {
	current, err := r.guard(id, domain.ActionValidate)
	if err != nil {
		return nil, err
	}
	updated, err := r.api.ValidateCloture(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.refresh(ctx, updated, current.Annee)
}

// Close moves a validee closure to cloturee once confirm approves it.
// A nil confirm counts as a refusal.
func (r *Registry) Close(ctx context.Context, id string, confirm ConfirmFunc) (*Cloture, error) {
	current, err := r.guard(id, domain.ActionClose)
	if err != nil {
		return nil, err
	}
	if confirm == nil || !confirm(current) {
		return nil, ErrNotConfirmed
	}
	updated, err := r.api.CloseCloture(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.refresh(ctx, updated, current.Annee)
}

func (r *Registry) guard(id string, action domain.ClotureAction) (Cloture, error) {
	current, ok := r.Find(id)
	if !ok {
		return Cloture{}, ErrUnknownPeriod
	}
	if !current.Actions().Allows(action) {
		return current, ErrActionNotAllowed
	}
	return current, nil
}

// refresh re-fetches the list after a mutation and returns the mutated record
// as found in the new list. When the re-fetch fails the mutated record, as
// returned by the server, replaces its entry in the held list and the result
// comes with ErrStaleList.
func (r *Registry) refresh(ctx context.Context, mutated *Cloture, annee int) (*Cloture, error) {
	year := r.Year()
	if year == 0 {
		year = annee
	}
	if _, err := r.Load(ctx, year); err != nil {
		r.patch(*mutated)
		return mutated, fmt.Errorf("%w: %v", ErrStaleList, err)
	}
	if fresh, ok := r.Find(mutated.ID); ok {
		return &fresh, nil
	}
	return mutated, nil
}

// patch replaces the held entry with the same id as c, or adds c when it
// belongs to the held year.
func (r *Registry) patch(c Cloture) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.year == 0 {
		r.year = c.Annee
	}
	for i := range r.items {
		if r.items[i].ID == c.ID {
			r.items[i] = c
			return
		}
	}
	if c.Annee != r.year {
		return
	}
	r.items = append(r.items, c)
	sort.SliceStable(r.items, func(i, j int) bool { return r.items[i].Mois > r.items[j].Mois })
}
