// Package di provides dependency injection configuration for the reader core.
package di

import (
	"github.com/samber/do/v2"

	"github.com/codexreader/codex-core/internal/config"
	"github.com/codexreader/codex-core/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
// Configuration is loaded from the process arguments and environment.
func NewContainer() *do.RootScope {
	injector := do.New()
	do.Provide(injector, providers.ProvideConfig)
	register(injector)
	return injector
}

// NewContainerWith configures the container around an already-loaded
// configuration. Used by entry points that own their own flag surface.
func NewContainerWith(cfg *config.Config) *do.RootScope {
	injector := do.New()
	do.ProvideValue(injector, cfg)
	register(injector)
	return injector
}

func register(injector *do.RootScope) {
	// Core infrastructure
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideLegacyStore)

	// Media
	do.Provide(injector, providers.ProvideCoverProcessor)

	// Events
	do.Provide(injector, providers.ProvideHub)

	// Business services
	do.Provide(injector, providers.ProvideLibraryService)
	do.Provide(injector, providers.ProvideSessionFactory)
}
