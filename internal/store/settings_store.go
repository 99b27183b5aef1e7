package store

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/print-shop/internal/domain"
)

const settingsFile = "settings.json"

// SettingsStore holds the singleton shop configuration. The backing file is
// the usual array-of-records layout with at most one element.
type SettingsStore interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error)
	Mode() PersistenceMode
}

type settingsStore struct {
	*collection[domain.Settings]
}

// NewSettingsStore returns a JSON-file-backed implementation rooted at dataDir.
func NewSettingsStore(dataDir string, logger *zap.Logger) SettingsStore {
	return &settingsStore{collection: newCollection[domain.Settings](dataDir, settingsFile, logger)}
}

func (s *settingsStore) Get(_ context.Context) (domain.Settings, error) {
	records := s.snapshot()
	if len(records) == 0 {
		return domain.DefaultSettings(), nil
	}
	return records[0], nil
}

func (s *settingsStore) Update(_ context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	var updated domain.Settings
	err := s.update(func(records []domain.Settings) ([]domain.Settings, error) {
		settings := domain.DefaultSettings()
		if len(records) > 0 {
			settings = records[0]
		}
		if patch.StoreName != nil {
			settings.StoreName = strings.TrimSpace(*patch.StoreName)
		}
		if patch.Currency != nil {
			settings.Currency = strings.ToUpper(strings.TrimSpace(*patch.Currency))
		}
		if patch.TaxRate != nil && *patch.TaxRate >= 0 {
			settings.TaxRate = *patch.TaxRate
		}
		if patch.ShippingFee != nil && *patch.ShippingFee >= 0 {
			settings.ShippingFee = *patch.ShippingFee
		}
		if patch.FreeShippingOver != nil && *patch.FreeShippingOver >= 0 {
			settings.FreeShippingOver = *patch.FreeShippingOver
		}
		settings.UpdatedAt = time.Now()

		updated = settings
		return []domain.Settings{settings}, nil
	})
	if err != nil {
		return domain.Settings{}, err
	}
	return updated, nil
}
