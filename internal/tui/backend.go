package tui

import (
	"context"
	"errors"
	"strings"

	"codeberg.org/codescribe/server/internal/scribe"
)

var ErrKeyConfigured = errors.New("a configured API key is already in use")

// wraps dispatcher; newGen may be nil when session keys are not wanted
func NewLocalBackend(dispatcher *scribe.Dispatcher, newGen GeneratorFactory) *LocalBackend {
	return &LocalBackend{
		base:    dispatcher,
		newGen:  newGen,
		current: dispatcher,
	}
}

func (b *LocalBackend) Run(ctx context.Context, action, code string) (scribe.Result, error) {
	return b.dispatcher().Run(ctx, action, code)
}

func (b *LocalBackend) AIEnabled() bool {
	return b.dispatcher().AIEnabled()
}

func (b *LocalBackend) Model() string {
	return b.dispatcher().Model()
}

func (b *LocalBackend) Name() string {
	if b.HasSessionKey() {
		return "local (session key)"
	}

	return "local"
}

func (b *LocalBackend) Configured() bool {
	return b.base.AIEnabled()
}

func (b *LocalBackend) HasSessionKey() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.session
}

// stores a credential for the lifetime of the program. an empty key clears it.
func (b *LocalBackend) SetKey(apiKey string) error {
	if b.Configured() {
		return ErrKeyConfigured
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		b.mu.Lock()
		b.current = b.base
		b.session = false
		b.mu.Unlock()

		return nil
	}

	if b.newGen == nil {
		return errors.New("session keys are not supported")
	}

	gen, err := b.newGen(apiKey)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.current = b.base.WithGenerator(gen)
	b.session = true
	b.mu.Unlock()

	return nil
}

func (b *LocalBackend) dispatcher() *scribe.Dispatcher {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.current
}
