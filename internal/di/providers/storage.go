package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/codexreader/codex-core/internal/config"
	"github.com/codexreader/codex-core/internal/logger"
	"github.com/codexreader/codex-core/internal/media/covers"
	"github.com/codexreader/codex-core/internal/observe"
	"github.com/codexreader/codex-core/internal/service"
	"github.com/codexreader/codex-core/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Store.Close()
}

// ProvideStore provides the primary document store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	s, err := store.New(cfg.Storage.DataPath, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	log.Info("Document store opened", "path", cfg.Storage.DataPath)
	return &StoreHandle{Store: s}, nil
}

// LegacyStoreHandle wraps the optional legacy store; Store is nil when no
// legacy database is configured.
type LegacyStoreHandle struct {
	*store.LegacyStore
}

// Shutdown implements do.Shutdownable.
func (h *LegacyStoreHandle) Shutdown() error {
	if h.LegacyStore == nil {
		return nil
	}
	return h.LegacyStore.Close()
}

// ProvideLegacyStore provides the read-only legacy database fallback.
func ProvideLegacyStore(i do.Injector) (*LegacyStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Storage.LegacyPath == "" {
		return &LegacyStoreHandle{}, nil
	}

	legacy, err := store.OpenLegacy(cfg.Storage.LegacyPath, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("open legacy store: %w", err)
	}

	log.Info("Legacy store attached", "path", cfg.Storage.LegacyPath)
	return &LegacyStoreHandle{LegacyStore: legacy}, nil
}

// ProvideCoverProcessor provides the cover image processor.
func ProvideCoverProcessor(i do.Injector) (*covers.Processor, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return covers.NewProcessor(log.Logger), nil
}

// ProvideHub provides the in-process event hub.
func ProvideHub(i do.Injector) (*observe.Hub, error) {
	return observe.NewHub(), nil
}

// ProvideLibraryService provides the library manager.
func ProvideLibraryService(i do.Injector) (*service.LibraryService, error) {
	s := do.MustInvoke[*StoreHandle](i)
	legacy := do.MustInvoke[*LegacyStoreHandle](i)
	coverProc := do.MustInvoke[*covers.Processor](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc, err := service.NewLibraryService(s.Store, legacy.LegacyStore, coverProc, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("library service: %w", err)
	}

	log.Info("Library service initialized", "documents", len(svc.List()))
	return svc, nil
}

// ProvideSessionFactory provides the per-document session factory, carrying
// the configured reader, viewport and UI tuning.
func ProvideSessionFactory(i do.Injector) (*service.SessionFactory, error) {
	s := do.MustInvoke[*StoreHandle](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionFactory(s.Store, cfg, log.Logger), nil
}
