package vision

import (
	"fmt"

	"checkdesk/internal/config"
	"checkdesk/internal/port"
)

// ProviderFactory is a function that creates a VisionClient from a provider config.
type ProviderFactory func(cfg *config.VisionProviderConfig) (port.VisionClient, error)

// registry of vision provider factories, populated explicitly via
// RegisterProvider at process start.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a vision provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewClient creates a VisionClient from a provider config using the registered factory.
func NewClient(cfg *config.VisionProviderConfig) (port.VisionClient, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown vision provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
