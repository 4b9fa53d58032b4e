package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/pyrite/internal/bind"
	"github.com/vk/pyrite/internal/ctxlog"
	"github.com/vk/pyrite/internal/watch"
)

// Run binds the configured instance and executes its behavior. With Watch
// enabled it then blocks, re-binding and re-running whenever the explicit
// configuration file changes; a failed re-bind logs the full report and
// keeps the previous instance.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "instance", cfg.Instance, "family", cfg.Family)

	adapters, err := a.assembleSources(ctx, cfg)
	if err != nil {
		return err
	}

	instance, err := a.binder.Bind(ctx, cfg.Instance, cfg.Family, adapters)
	if err != nil {
		return fmt.Errorf("configuration failed:\n%w", err)
	}

	if err := instance.Run(ctx, a.outW); err != nil {
		return fmt.Errorf("instance %q failed: %w", cfg.Instance, err)
	}

	if !cfg.Watch {
		a.logger.Debug("App.Run method finished.")
		return nil
	}

	watcher := watch.New(cfg.ConfigPath, func(ctx context.Context) {
		fresh, err := a.binder.Bind(ctx, cfg.Instance, cfg.Family, adapters)
		if err != nil {
			var bindErr *bind.BindError
			if errors.As(err, &bindErr) {
				fmt.Fprintln(a.outW, bindErr.Error())
			}
			a.logger.Warn("Re-bind failed, keeping previous instance.", "error", err)
			return
		}
		instance = fresh
		if err := instance.Run(ctx, a.outW); err != nil {
			a.logger.Warn("Instance run failed after re-bind.", "error", err)
		}
	})

	err = watcher.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
