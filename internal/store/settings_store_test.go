package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/print-shop/internal/domain"
)

func TestSettingsStore_DefaultsBeforeFirstSave(t *testing.T) {
	settings := NewSettingsStore(t.TempDir(), zap.NewNop())

	got, err := settings.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings().StoreName, got.StoreName)
	assert.Equal(t, "USD", got.Currency)
}

func TestSettingsStore_UpdateStaysSingleton(t *testing.T) {
	dir := t.TempDir()
	settings := NewSettingsStore(dir, zap.NewNop())
	ctx := context.Background()

	name := "Benchy & Beyond"
	currency := "eur"
	_, err := settings.Update(ctx, domain.SettingsPatch{StoreName: &name, Currency: &currency})
	require.NoError(t, err)

	fee := 7.5
	updated, err := settings.Update(ctx, domain.SettingsPatch{ShippingFee: &fee})
	require.NoError(t, err)

	// Earlier fields survive later partial updates.
	assert.Equal(t, "Benchy & Beyond", updated.StoreName)
	assert.Equal(t, "EUR", updated.Currency)
	assert.Equal(t, 7.5, updated.ShippingFee)

	// A fresh instance sees exactly one record.
	reopened := NewSettingsStore(dir, zap.NewNop())
	got, err := reopened.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Benchy & Beyond", got.StoreName)
}
