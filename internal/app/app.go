// Package app assembles the weavekit runtime: it registers compiled-in
// modules, scans manifest trees, wires the dependency-injection context, and
// populates the provider registry. Every startup error is fatal — there is no
// partial-startup mode; a half-wired graph is worse than no graph.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/joho/godotenv"

	"github.com/weavekit/weavekit/internal/catalog"
	"github.com/weavekit/weavekit/internal/container"
	"github.com/weavekit/weavekit/internal/ctxlog"
	"github.com/weavekit/weavekit/internal/manifest"
	"github.com/weavekit/weavekit/internal/provider"
	"github.com/weavekit/weavekit/internal/scanner"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW        io.Writer
	logger      *slog.Logger
	config      *Config
	catalog     *catalog.Catalog
	context     *container.Context
	providers   *provider.Registry
	descriptors []*manifest.Descriptor
}

// NewApp constructs and fully wires an App: logger, env file, catalog, scan,
// container start, provider registration, in that order. Any failure aborts
// the whole bootstrap.
func NewApp(outW io.Writer, cfg *Config, modules ...catalog.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load the env file before any constructor reads credentials from the
	// environment.
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", cfg.EnvFile, err)
		}
		logger.Debug("Env file loaded.", "file", cfg.EnvFile)
	}

	cat := catalog.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(cat)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "constructors", len(cat.Symbols()))

	scn := scanner.New(cat, cfg.ComponentsPath)
	descriptors, err := scn.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("component scan failed: %w", err)
	}
	logger.Debug("Component scan finished.", "descriptors", len(descriptors))

	live, err := selectLive(ctx, descriptors)
	if err != nil {
		return nil, err
	}

	cn := container.New()
	for _, desc := range live {
		ctor, ok := cat.Constructor(desc.Constructor)
		if !ok {
			// The scanner already filtered these; reaching here is a bug.
			return nil, fmt.Errorf("constructor %q vanished from catalog", desc.Constructor)
		}
		if err := cn.RegisterComponent(desc, ctor); err != nil {
			return nil, err
		}
	}

	if err := cn.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to wire component graph: %w", err)
	}

	providers := provider.NewRegistry()
	for _, desc := range live {
		if desc.Category == "" {
			continue
		}
		inst, err := cn.GetBeanIn(desc.Category, desc.Name)
		if err != nil {
			return nil, err
		}
		entry := provider.Entry{
			Category: desc.Category,
			Name:     desc.Name,
			Priority: desc.Priority,
			Instance: inst,
		}
		if err := providers.Register(ctx, entry); err != nil {
			return nil, err
		}
		cn.MarkRegistered(desc.Category, desc.Name)
	}
	logger.Debug("Provider registry populated.", "categories", providers.Categories())

	return &App{
		outW:        outW,
		logger:      logger,
		config:      cfg,
		catalog:     cat,
		context:     cn,
		providers:   providers,
		descriptors: descriptors,
	}, nil
}

// selectLive filters descriptors down to the ones that will be wired:
// disabled components drop out, and same-(category, name) claims are
// arbitrated by priority. Two live claims at equal priority are a fatal
// misconfiguration.
func selectLive(ctx context.Context, descriptors []*manifest.Descriptor) ([]*manifest.Descriptor, error) {
	logger := ctxlog.FromContext(ctx)

	type key struct {
		category string
		name     string
	}

	winners := make(map[key]*manifest.Descriptor)
	order := make([]key, 0, len(descriptors))

	for _, desc := range descriptors {
		if !desc.Enabled {
			logger.Debug("Skipping disabled component.", "type", desc.TypeLabel, "name", desc.Name)
			continue
		}

		k := key{category: desc.Category, name: desc.Name}
		existing, occupied := winners[k]
		if !occupied {
			winners[k] = desc
			order = append(order, k)
			continue
		}

		switch {
		case desc.Priority > existing.Priority:
			logger.Debug("Component overrides lower-priority claim.",
				"category", k.category, "name", k.name,
				"winner", desc.TypeLabel, "shadowed", existing.TypeLabel)
			winners[k] = desc
		case desc.Priority < existing.Priority:
			logger.Debug("Component shadowed by higher-priority claim.",
				"category", k.category, "name", k.name,
				"winner", existing.TypeLabel, "shadowed", desc.TypeLabel)
		default:
			// Non-provider components are not a registry concern; their name
			// clash is a plain wiring error.
			if k.category == "" {
				return nil, fmt.Errorf("%w: name %q claimed by both %s and %s at priority %d",
					container.ErrDuplicateBean, k.name,
					existing.TypeLabel, desc.TypeLabel, desc.Priority)
			}
			return nil, fmt.Errorf("%w: (%s, %s) claimed by both %s and %s at priority %d",
				provider.ErrDuplicateRegistration, k.category, k.name,
				existing.TypeLabel, desc.TypeLabel, desc.Priority)
		}
	}

	live := make([]*manifest.Descriptor, 0, len(winners))
	for _, k := range order {
		live = append(live, winners[k])
	}
	sort.Slice(live, func(i, j int) bool { return live[i].Name < live[j].Name })
	return live, nil
}

// Context returns the application's DI context.
func (a *App) Context() *container.Context {
	return a.context
}

// Providers returns the application's provider registry.
func (a *App) Providers() *provider.Registry {
	return a.providers
}

// Descriptors returns every descriptor discovered during the scan, including
// disabled and shadowed ones. This is primarily for testing and introspection.
func (a *App) Descriptors() []*manifest.Descriptor {
	return a.descriptors
}
