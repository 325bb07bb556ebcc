package llm

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sandevgo/anjali/internal/core"
)

// DynamicProvider lets the model be switched at runtime without
// restarting the transports that hold a reference to it.
type DynamicProvider struct {
	config  core.ProviderConfig
	current atomic.Value
	mu      sync.Mutex
}

func NewDynamicProvider(ctx context.Context, config core.ProviderConfig) (*DynamicProvider, error) {
	d := &DynamicProvider{config: config}

	provider, err := NewProvider(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial provider: %w", err)
	}

	d.current.Store(provider)
	return d, nil
}

func (d *DynamicProvider) load() core.AIProvider {
	return d.current.Load().(core.AIProvider)
}

func (d *DynamicProvider) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	return d.load().Chat(ctx, history)
}

func (d *DynamicProvider) Models(ctx context.Context) ([]core.Model, error) {
	return d.load().Models(ctx)
}

func (d *DynamicProvider) GetProvider() string {
	return d.config.GetProvider()
}

func (d *DynamicProvider) GetModel() string {
	return d.config.GetModel()
}

func (d *DynamicProvider) SetModel(ctx context.Context, model string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	prev := d.config.GetModel()
	if err := d.config.SetModel(model); err != nil {
		return err
	}

	newProvider, err := NewProvider(ctx, d.config)
	if err != nil {
		_ = d.config.SetModel(prev)
		return fmt.Errorf("failed to create provider: %w", err)
	}

	d.current.Store(newProvider)
	return nil
}
