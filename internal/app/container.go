// Package app wires configuration, storage and the label services together.
package app

import (
	"fmt"

	"github.com/aki/qrlabel/internal/core/config"
	"github.com/aki/qrlabel/internal/core/logger"
	"github.com/aki/qrlabel/internal/core/sequence"
	"github.com/aki/qrlabel/internal/core/store"
	"github.com/aki/qrlabel/internal/render"
)

// Container holds the services of one project
type Container struct {
	// ProjectRoot is the directory holding .qrlabel or the legacy last_numbers.json
	ProjectRoot string

	ConfigManager *config.Manager
	Config        *config.Config
	Logger        logger.Logger

	Store     store.Store
	Generator *sequence.Generator
	Renderer  *render.Renderer
}

// Option configures a Container
type Option func(*Container)

// WithLogger sets the logger handed to every service
func WithLogger(l logger.Logger) Option {
	return func(c *Container) {
		c.Logger = logger.OrNop(l)
	}
}

// WithConfig skips loading the configuration file
func WithConfig(cfg *config.Config) Option {
	return func(c *Container) {
		c.Config = cfg
	}
}

// NewContainer creates a container with all services initialized in
// dependency order. An uninitialized project runs on the defaults.
func NewContainer(projectRoot string, opts ...Option) (*Container, error) {
	c := &Container{
		ProjectRoot:   projectRoot,
		ConfigManager: config.NewManager(projectRoot),
		Logger:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.Config == nil {
		cfg, err := c.ConfigManager.LoadOrDefault()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		c.Config = cfg
	}

	st, err := store.Open(store.Options{
		Driver: c.Config.Store.Driver,
		Path:   c.ConfigManager.StorePath(c.Config),
		Logger: c.Logger.With("component", "store"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sequence store: %w", err)
	}
	c.Store = st

	c.Generator = sequence.NewGenerator(st,
		sequence.WithLogger(c.Logger.With("component", "generator")),
		sequence.WithMaxCount(c.Config.Server.MaxCount),
	)
	c.Renderer = render.NewRenderer(render.LayoutFromConfig(c.Config.Label))

	return c, nil
}

// Close releases the sequence store
func (c *Container) Close() error {
	if c.Store == nil {
		return nil
	}
	return c.Store.Close()
}
