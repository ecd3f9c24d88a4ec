package tuihost

import (
	"errors"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/llehouerou/dexlog/internal/formbridge"
)

// nativeOpenFile shows the desktop file-open dialog.
func (h *Host) nativeOpenFile(suggestedName, dir string, filters []formbridge.FileFilter) string {
	b := dialog.File().Title("Open")
	if dir != "" {
		b = b.SetStartDir(dir)
	}
	if suggestedName != "" {
		b = b.SetStartFile(suggestedName)
	}
	for _, f := range filters {
		b = b.Filter(f.Description, f.Extensions...)
	}
	path, err := b.Load()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			h.logger.Warn("file dialog", zap.Error(err))
		}
		return ""
	}
	return path
}
