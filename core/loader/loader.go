package loader

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature is a self-contained module that registers its routes on the app.
type Feature interface {
	// Name returns the unique feature name.
	Name() string
	// IsEnabled reports whether the feature should be loaded.
	IsEnabled() bool
	// Load registers the feature's routes.
	Load(app fiber.Router) error
}

// Manager holds the registry of features.
type Manager struct {
	features []Feature
	logger   *zap.Logger
}

// NewManager creates an empty feature manager.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{logger: logger}
}

// Register adds a feature to the registry.
func (m *Manager) Register(f Feature) {
	m.features = append(m.features, f)
}

// Features returns the registered features in registration order.
func (m *Manager) Features() []Feature {
	return m.features
}

// LoadAll loads every enabled feature, stopping at the first failure.
func (m *Manager) LoadAll(app fiber.Router) error {
	for _, f := range m.features {
		if !f.IsEnabled() {
			m.logger.Info("Feature disabled", zap.String("feature", f.Name()))
			continue
		}
		if err := f.Load(app); err != nil {
			return fmt.Errorf("failed to load feature %s: %w", f.Name(), err)
		}
		m.logger.Info("Feature loaded", zap.String("feature", f.Name()))
	}
	return nil
}

// RouteFeature is a Feature whose loading is a single route registration.
type RouteFeature struct {
	name     string
	enabled  bool
	register func(fiber.Router)
}

// Routes returns an enabled RouteFeature named name.
func Routes(name string, register func(fiber.Router)) *RouteFeature {
	return &RouteFeature{name: name, enabled: true, register: register}
}

// EnabledIf sets whether the feature is loaded and returns f.
func (f *RouteFeature) EnabledIf(enabled bool) *RouteFeature {
	f.enabled = enabled
	return f
}

func (f *RouteFeature) Name() string    { return f.name }
func (f *RouteFeature) IsEnabled() bool { return f.enabled }

func (f *RouteFeature) Load(app fiber.Router) error {
	f.register(app)
	return nil
}
