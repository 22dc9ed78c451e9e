package settings

import (
	"fmt"
	"sync"

	"CardDesk/internal/evaluator"
	"CardDesk/internal/model"
)

// Manager holds the desk's buying policy with concurrency safety. The
// evaluator never reads this directly: callers take a copy via Get and
// pass it in, so every evaluation sees one consistent policy.
type Manager struct {
	mu       sync.Mutex
	settings model.DeskSettings
	filePath string
}

// NewManager creates a Manager, loading persisted settings or falling
// back to the defaults on first run.
func NewManager(filePath string) (*Manager, error) {
	loaded, err := LoadSettings(filePath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	s := model.DefaultSettings()
	if loaded != nil {
		s = *loaded
	}

	m := &Manager{settings: s, filePath: filePath}
	if err := m.save(); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return m, nil
}

// Get returns a copy of the current settings.
func (m *Manager) Get() model.DeskSettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// Update validates and persists a new policy.
func (m *Manager) Update(s model.DeskSettings) error {
	if err := Validate(&s); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
	return m.save()
}

// Validate checks that a policy is internally consistent.
func Validate(s *model.DeskSettings) error {
	if s.DefaultOfferPercentage < 0 || s.DefaultOfferPercentage > 100 {
		return fmt.Errorf("default_offer_percentage must be 0-100, got %.1f", s.DefaultOfferPercentage)
	}
	if s.PriceRounding != 1 && s.PriceRounding != 5 && s.PriceRounding != 10 {
		return fmt.Errorf("price_rounding must be 1, 5 or 10, got %.1f", s.PriceRounding)
	}
	if evaluator.LiquidityRank(s.MinLiquidityLevel) == 0 {
		return fmt.Errorf("unknown min_liquidity_level %q", s.MinLiquidityLevel)
	}
	if s.MinConfidenceLevel < 0 || s.MinConfidenceLevel > 100 {
		return fmt.Errorf("min_confidence_level must be 0-100, got %.1f", s.MinConfidenceLevel)
	}
	if s.MinMarketValue < 0 {
		return fmt.Errorf("min_market_value must be non-negative, got %.2f", s.MinMarketValue)
	}
	if s.TargetFlipDays <= 0 {
		return fmt.Errorf("target_flip_days must be positive, got %d", s.TargetFlipDays)
	}
	if s.MinROIPercentage < 0 {
		return fmt.Errorf("min_roi_percentage must be non-negative, got %.1f", s.MinROIPercentage)
	}
	return nil
}

func (m *Manager) save() error {
	return SaveSettings(m.filePath, &m.settings)
}
