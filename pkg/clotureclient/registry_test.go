package clotureclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	"github.com/SscSPs/farm_management_app/pkg/clotureclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedInRegistry(t *testing.T) (*fakeBackend, *clotureclient.Registry) {
	t.Helper()
	fb := newFakeBackend(t)
	client := clotureclient.New(fb.baseURL())
	client.SetToken(fakeToken)
	return fb, clotureclient.NewRegistry(client)
}

func TestRegistry_LoadOrdersMonthDescending(t *testing.T) {
	fb, reg := newLoggedInRegistry(t)
	fb.seed(2, 2024, domain.StatutCloturee, 10)
	fb.seed(11, 2024, domain.StatutOuverte, 10)
	fb.seed(5, 2024, domain.StatutValidee, 10)
	fb.seed(7, 2023, domain.StatutOuverte, 10)

	items, err := reg.Load(context.Background(), 2024)

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []int{11, 5, 2}, []int{items[0].Mois, items[1].Mois, items[2].Mois})
	assert.Equal(t, 2024, reg.Year())
}

func TestRegistry_CreateDuplicateMakesNoRequest(t *testing.T) {
	fb, reg := newLoggedInRegistry(t)
	fb.seed(3, 2024, domain.StatutOuverte, 0)
	_, err := reg.Load(context.Background(), 2024)
	require.NoError(t, err)
	before := fb.requests.Load()

	created, err := reg.Create(context.Background(), 3, 2024)

	assert.ErrorIs(t, err, clotureclient.ErrPeriodExists)
	assert.Nil(t, created)
	assert.Equal(t, before, fb.requests.Load())
	assert.Len(t, reg.Items(), 1)
}

func TestRegistry_CreateOutOfOrderMonthIsAllowed(t *testing.T) {
	fb, reg := newLoggedInRegistry(t)
	fb.seed(1, 2024, domain.StatutOuverte, 0)
	_, err := reg.Load(context.Background(), 2024)
	require.NoError(t, err)

	created, err := reg.Create(context.Background(), 9, 2024)

	require.NoError(t, err)
	assert.Equal(t, domain.StatutOuverte, created.Statut)
	assert.Len(t, reg.Items(), 2)
	assert.Equal(t, 9, reg.Items()[0].Mois)
}

func TestRegistry_CreateInvalidMonth(t *testing.T) {
	fb, reg := newLoggedInRegistry(t)

	_, err := reg.Create(context.Background(), 13, 2024)

	assert.ErrorIs(t, err, clotureclient.ErrInvalidPeriod)
	assert.Zero(t, fb.requests.Load())
}

func TestRegistry_ServerConflictLeavesListUntouched(t *testing.T) {
	fb, reg := newLoggedInRegistry(t)
	_, err := reg.Load(context.Background(), 2024)
	require.NoError(t, err)
	// Created by someone else after our load.
	fb.seed(4, 2024, domain.StatutOuverte, 0)

	_, err = reg.Create(context.Background(), 4, 2024)

	var apiErr *clotureclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Une clôture existe déjà pour ce mois", clotureclient.UserMessage(err))
	assert.Empty(t, reg.Items())
}

func TestRegistry_TransitionsGuardedByStatus(t *testing.T) {
	fb, reg := newLoggedInRegistry(t)
	open := fb.seed(1, 2024, domain.StatutOuverte, 0)
	closed := fb.seed(2, 2024, domain.StatutCloturee, 0)
	_, err := reg.Load(context.Background(), 2024)
	require.NoError(t, err)
	before := fb.requests.Load()

	_, err = reg.Close(context.Background(), open.ID, func(clotureclient.Cloture) bool { return true })
	assert.ErrorIs(t, err, clotureclient.ErrActionNotAllowed)

	_, err = reg.Validate(context.Background(), closed.ID)
	assert.ErrorIs(t, err, clotureclient.ErrActionNotAllowed)

	_, err = reg.Validate(context.Background(), "unknown")
	assert.ErrorIs(t, err, clotureclient.ErrUnknownPeriod)

	assert.Equal(t, before, fb.requests.Load())
}

func TestRegistry_CloseNeedsConfirmation(t *testing.T) {
	fb, reg := newLoggedInRegistry(t)
	validated := fb.seed(6, 2024, domain.StatutValidee, 0)
	_, err := reg.Load(context.Background(), 2024)
	require.NoError(t, err)
	before := fb.requests.Load()

	var asked clotureclient.Cloture
	_, err = reg.Close(context.Background(), validated.ID, func(c clotureclient.Cloture) bool {
		asked = c
		return false
	})
	assert.ErrorIs(t, err, clotureclient.ErrNotConfirmed)
	assert.Equal(t, validated.ID, asked.ID)

	_, err = reg.Close(context.Background(), validated.ID, nil)
	assert.ErrorIs(t, err, clotureclient.ErrNotConfirmed)

	assert.Equal(t, before, fb.requests.Load())
}

func TestRegistry_EndToEndLifecycle(t *testing.T) {
	fb, reg := newLoggedInRegistry(t)
	seeded := fb.seed(1, 2024, domain.StatutOuverte, 250)
	ctx := context.Background()

	items, err := reg.Load(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Mois)
	assert.Equal(t, domain.StatutOuverte, items[0].Statut)
	assert.True(t, items[0].Actions().Validate)

	validated, err := reg.Validate(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatutValidee, validated.Statut)
	require.NotNil(t, validated.ValideParNom)
	assert.NotNil(t, validated.DateValidation)
	assert.Nil(t, validated.ClotureParNom)

	closed, err := reg.Close(ctx, seeded.ID, func(clotureclient.Cloture) bool { return true })
	require.NoError(t, err)
	assert.Equal(t, domain.StatutCloturee, closed.Statut)
	require.NotNil(t, closed.ClotureParNom)
	assert.True(t, closed.LectureSeule)

	held, ok := reg.Find(seeded.ID)
	require.True(t, ok)
	assert.False(t, held.Actions().Any())

	before := fb.requests.Load()
	_, err = reg.Validate(ctx, seeded.ID)
	assert.ErrorIs(t, err, clotureclient.ErrActionNotAllowed)
	_, err = reg.Close(ctx, seeded.ID, func(clotureclient.Cloture) bool { return true })
	assert.ErrorIs(t, err, clotureclient.ErrActionNotAllowed)
	assert.Equal(t, before, fb.requests.Load())
}

func TestRegistry_CloseKeepsServerRecordWhenReloadFails(t *testing.T) {
	fb, reg := newLoggedInRegistry(t)
	validated := fb.seed(6, 2024, domain.StatutValidee, 0)
	fb.seed(5, 2024, domain.StatutOuverte, 0)
	_, err := reg.Load(context.Background(), 2024)
	require.NoError(t, err)
	fb.listDown.Store(true)

	closed, err := reg.Close(context.Background(), validated.ID, func(clotureclient.Cloture) bool { return true })

	assert.ErrorIs(t, err, clotureclient.ErrStaleList)
	assert.Equal(t, "Opération effectuée ; la liste n'a pas pu être actualisée.", clotureclient.UserMessage(err))
	require.NotNil(t, closed)
	assert.Equal(t, domain.StatutCloturee, closed.Statut)

	held, ok := reg.Find(validated.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StatutCloturee, held.Statut)
	assert.False(t, held.Actions().Any())
	assert.Len(t, reg.Items(), 2)

	before := fb.requests.Load()
	_, err = reg.Close(context.Background(), validated.ID, func(clotureclient.Cloture) bool { return true })
	assert.ErrorIs(t, err, clotureclient.ErrActionNotAllowed)
	assert.Equal(t, before, fb.requests.Load())
}

func TestRegistry_CreateAddsRecordWhenReloadFails(t *testing.T) {
	fb, reg := newLoggedInRegistry(t)
	fb.seed(1, 2024, domain.StatutOuverte, 0)
	_, err := reg.Load(context.Background(), 2024)
	require.NoError(t, err)
	fb.listDown.Store(true)

	created, err := reg.Create(context.Background(), 4, 2024)

	assert.ErrorIs(t, err, clotureclient.ErrStaleList)
	require.NotNil(t, created)
	items := reg.Items()
	require.Len(t, items, 2)
	assert.Equal(t, []int{4, 1}, []int{items[0].Mois, items[1].Mois})

	_, err = reg.Create(context.Background(), 4, 2024)
	assert.ErrorIs(t, err, clotureclient.ErrPeriodExists)
}

func TestUserMessage_FallsBackToGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()
	reg := clotureclient.NewRegistry(clotureclient.New(srv.URL))

	_, err := reg.Load(context.Background(), 2024)

	require.Error(t, err)
	assert.Equal(t, clotureclient.GenericErrorMessage, clotureclient.UserMessage(err))
	assert.Zero(t, reg.Year())
}

func TestUserMessage_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := clotureclient.New(url).ListClotures(context.Background(), 2024)

	require.Error(t, err)
	assert.Equal(t, clotureclient.GenericErrorMessage, clotureclient.UserMessage(err))
}

func TestClient_ExportDecodes(t *testing.T) {
	fb := newFakeBackend(t)
	client := clotureclient.New(fb.baseURL())
	client.SetToken(fakeToken)

	file, err := client.ExportClotures(context.Background(), 2024)

	require.NoError(t, err)
	assert.Equal(t, "clotures_2024.xlsx", file.Filename)
	raw, err := file.Decode()
	require.NoError(t, err)
	assert.Equal(t, []byte("PK\x03\x04"), raw)
}
