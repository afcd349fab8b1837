package gateway

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// MaxParams is the most configuration parameters a provider key may carry.
const MaxParams = 4

var (
	// ErrUnknownProviderType indicates no factory was registered for a type
	ErrUnknownProviderType = errors.New("unknown provider type")
	// ErrTooManyParams indicates a Config with more than MaxParams parameters
	ErrTooManyParams = errors.New("too many provider parameters")
)

// Config selects and parameterizes a provider instance.
type Config struct {
	// ProviderID is reported by the instance's ID method
	ProviderID string
	// Type selects the registered factory
	Type   string
	Params []string
}

// Param returns the i'th parameter or "" when absent.
func (c Config) Param(i int) string {
	if i < 0 || i >= len(c.Params) {
		return ""
	}
	return c.Params[i]
}

// Factory builds a provider from its configuration.
type Factory func(cfg Config) (Provider, error)

type instanceKey struct {
	providerID string
	typ        string
	params     [MaxParams]string
	nparams    int
}

// Registry maps provider types to factories and keeps exactly one provider
// instance per distinct Config. It is safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	factories map[string]Factory
	instances map[instanceKey]Provider
	logger    *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		instances: make(map[instanceKey]Provider),
		logger:    logger,
	}
}

// Register adds a factory for typ. Registering a type twice is an error.
func (r *Registry) Register(typ string, factory Factory) error {
	if typ == "" {
		return fmt.Errorf("provider type cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory for provider type %q cannot be nil", typ)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[typ]; exists {
		return fmt.Errorf("provider type %q already registered", typ)
	}
	r.factories[typ] = factory
	return nil
}

// Get returns the provider for cfg, constructing it on first use. Later
// calls with an identical configuration return the same instance.
func (r *Registry) Get(cfg Config) (Provider, error) {
	if len(cfg.Params) > MaxParams {
		return nil, fmt.Errorf("%w: %d given, at most %d", ErrTooManyParams, len(cfg.Params), MaxParams)
	}

	key := instanceKey{providerID: cfg.ProviderID, typ: cfg.Type, nparams: len(cfg.Params)}
	copy(key.params[:], cfg.Params)

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.instances[key]; ok {
		return p, nil
	}

	factory, ok := r.factories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProviderType, cfg.Type)
	}

	p, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider %q of type %q: %w", cfg.ProviderID, cfg.Type, err)
	}

	r.instances[key] = p
	r.logger.Info("provider created",
		"provider_id", cfg.ProviderID,
		"type", cfg.Type,
		"params", len(cfg.Params),
	)
	return p, nil
}
