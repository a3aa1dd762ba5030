package services

import (
	"context"
	"testing"

	"github.com/dmelo-dev/luzpalavra/internal/client/models"
	"github.com/dmelo-dev/luzpalavra/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitiatePurchaseUnknownSKU(t *testing.T) {
	svc := NewPurchaseService(testStore(t), &fakeBackend{}, &fakeOpener{}, testLogger())
	_, err := svc.InitiatePurchase(context.Background(), "volume_99")
	assert.ErrorIs(t, err, common.ErrUnknownProduct)
}

func TestInitiatePurchaseWithoutEmailDefersIntent(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	backend := &fakeBackend{}
	svc := NewPurchaseService(store, backend, &fakeOpener{}, testLogger())

	res, err := svc.InitiatePurchase(ctx, "volume_2")
	require.NoError(t, err)
	assert.True(t, res.Gated)

	pending, err := store.TakePendingAction(ctx)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, models.PendingPurchase, pending.Type)
	assert.Equal(t, "volume_2", pending.SKU)
}

func TestInitiatePurchaseOpensCheckout(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	require.NoError(t, store.SetEmail(ctx, "ana@ex.com"))

	backend := &fakeBackend{paymentURL: "https://pay.example/x"}
	opener := &fakeOpener{}
	svc := NewPurchaseService(store, backend, opener, testLogger())

	res, err := svc.InitiatePurchase(ctx, "combo_4")
	require.NoError(t, err)
	assert.False(t, res.Gated)
	assert.True(t, res.Opened)
	assert.Equal(t, "https://pay.example/x", res.CheckoutURL)
	assert.Equal(t, []string{"https://pay.example/x"}, opener.urls)
	assert.Equal(t, "combo_4", backend.paymentSKU)
	assert.InDelta(t, 27.90, backend.paymentValue, 0.001)
}

func TestInitiatePurchaseWithoutOpenerReturnsURL(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	require.NoError(t, store.SetEmail(ctx, "ana@ex.com"))

	backend := &fakeBackend{paymentURL: "https://pay.example/x"}
	svc := NewPurchaseService(store, backend, nil, testLogger())

	res, err := svc.InitiatePurchase(ctx, "volume_3")
	require.NoError(t, err)
	assert.False(t, res.Opened)
	assert.Equal(t, "https://pay.example/x", res.CheckoutURL)
}

func TestInitiatePurchaseBackendFailure(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	require.NoError(t, store.SetEmail(ctx, "ana@ex.com"))

	backend := &fakeBackend{paymentErr: common.ErrNoCheckoutURL}
	svc := NewPurchaseService(store, backend, &fakeOpener{}, testLogger())

	_, err := svc.InitiatePurchase(ctx, "volume_2")
	assert.ErrorIs(t, err, common.ErrNoCheckoutURL)
}

func TestSubmitEmailResumesDeferredPurchase(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	backend := &fakeBackend{paymentURL: "https://pay.example/x"}
	opener := &fakeOpener{}

	purchases := NewPurchaseService(store, backend, opener, testLogger())
	account := NewAccountService(store)

	res, err := purchases.InitiatePurchase(ctx, "volume_2")
	require.NoError(t, err)
	require.True(t, res.Gated)

	pending, err := account.SubmitEmail(ctx, "Ana@Ex.com")
	require.NoError(t, err)
	require.NotNil(t, pending)
	require.Equal(t, models.PendingPurchase, pending.Type)

	res, err = purchases.InitiatePurchase(ctx, pending.SKU)
	require.NoError(t, err)
	assert.False(t, res.Gated)
	assert.Equal(t, []string{"https://pay.example/x"}, opener.urls)
}

func TestSubmitEmailRejectsInvalid(t *testing.T) {
	account := NewAccountService(testStore(t))
	_, err := account.SubmitEmail(context.Background(), "sem-arroba")
	assert.ErrorIs(t, err, common.ErrInvalidEmail)
}

func TestSubmitEmailNormalizes(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	account := NewAccountService(store)

	_, err := account.SubmitEmail(ctx, "  Ana@Ex.COM ")
	require.NoError(t, err)
	assert.Equal(t, "ana@ex.com", store.Email())
}
