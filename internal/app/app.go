package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/vk/pyrite/internal/bind"
	"github.com/vk/pyrite/internal/ctxlog"
	"github.com/vk/pyrite/internal/fsutil"
	"github.com/vk/pyrite/internal/hclsource"
	"github.com/vk/pyrite/internal/pfg"
	"github.com/vk/pyrite/internal/registry"
	"github.com/vk/pyrite/internal/source"
	"github.com/vk/pyrite/internal/yamlsource"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	binder   *bind.Binder
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry. When
// no modules are passed, the compiled-in component families register.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("Component families registered.", "count", len(reg.Families()), "families", reg.Families())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		binder:   bind.New(reg),
	}
}

// Registry returns the application's registry. This is primarily for
// testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// assembleSources builds the layered source adapter list for the instance:
// a discovered instance-named file, then the explicitly requested file,
// then the command-line assignments. The adapters carry their layer's
// priority, so assembly order only matters for equal-priority ties.
func (a *App) assembleSources(ctx context.Context, cfg *Config) ([]source.Adapter, error) {
	logger := ctxlog.FromContext(ctx)
	var adapters []source.Adapter

	if path, ok := fsutil.FindInstanceConfig(cfg.Instance, cfg.SearchPath); ok {
		logger.Debug("Discovered instance configuration file.", "path", path)
		adapter, err := fileAdapter(path, source.PriorityDiscoveredFile)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, adapter)
	}

	if cfg.ConfigPath != "" {
		adapter, err := fileAdapter(cfg.ConfigPath, source.PriorityExplicitFile)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, adapter)
	}

	adapters = append(adapters, source.NewCommandLine(cfg.Instance, cfg.Assignments))
	return adapters, nil
}

// fileAdapter picks the format adapter for a configuration file by
// extension.
func fileAdapter(path string, priority source.Priority) (source.Adapter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pfg":
		return pfg.NewFile(path, priority), nil
	case ".yaml", ".yml":
		return yamlsource.NewFile(path, priority), nil
	case ".hcl":
		return hclsource.NewFile(path, priority), nil
	default:
		return nil, fmt.Errorf("unsupported configuration format %q", filepath.Ext(path))
	}
}
