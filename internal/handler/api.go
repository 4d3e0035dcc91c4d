package handler

import (
	"time"

	"github.com/mindmend/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	entries      *service.EntryService
	affirmations service.AffirmationGenerator
	system       *service.SystemSettingService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, defaults service.SystemSettings, affirmationTimeout time.Duration) *API {
	systemService := service.NewSystemSettingService(gdb, defaults)
	affirmationService := service.NewAffirmationService(systemService, affirmationTimeout)

	return &API{
		db:           gdb,
		entries:      service.NewEntryService(gdb, affirmationService),
		affirmations: affirmationService,
		system:       systemService,
	}
}

// DB exposes the underlying gorm instance for legacy paths.
func (a *API) DB() *gorm.DB {
	return a.db
}
