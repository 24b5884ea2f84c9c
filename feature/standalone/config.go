package standalone

import (
	"fmt"
	"sort"

	"milvus-server/core/ports"
	"milvus-server/core/server"
	"milvus-server/core/storage"
	"milvus-server/core/template"
	"milvus-server/core/utils"

	"go.uber.org/zap"
)

// Options configures a ServerConfig.
type Options struct {
	// TemplatePath selects the template. Empty uses the built-in template.
	TemplatePath string
	// Overrides maps template variable names, plus the reserved data_dir key, to values.
	Overrides map[string]any
	// Logger is optional and defaults to a no-op logger.
	Logger *zap.Logger
}

// ServerConfig resolves the configuration of one Milvus session.
//
// Resolve runs the phases in a fixed order over a private copy of the variable table:
//  1. overrides: writes every overridden non-port variable
//  2. ports: writes every *_port variable, honouring pinned overrides
//  3. storage: writes the path variables, creates the directory layout
//  4. validation: every variable must hold a value
//  5. render: writes configs/milvus.yaml
//
// The copy replaces the session table only when all phases succeed.
type ServerConfig struct {
	doc       *template.Document
	table     *template.Table
	overrides map[string]any

	allocator *ports.Allocator
	resolver  *storage.Resolver
	layout    storage.Layout
	resolved  bool

	// rendered is true while ConfigFile exists for the current layout.
	rendered bool

	logger *zap.Logger
}

// NewServerConfig loads and parses the template.
func NewServerConfig(opts Options) (*ServerConfig, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	doc, err := template.Load(opts.TemplatePath)
	if err != nil {
		return nil, err
	}
	table, err := template.Parse(doc)
	if err != nil {
		return nil, err
	}

	c := &ServerConfig{
		doc:       doc,
		table:     table,
		overrides: make(map[string]any),
		allocator: ports.NewAllocator(logger),
		resolver:  storage.NewResolver(logger),
		logger:    logger,
	}
	c.Update(opts.Overrides)
	c.logVariables()
	return c, nil
}

func (c *ServerConfig) logVariables() {
	for _, v := range c.table.Variables() {
		c.logger.Debug("Configurable item",
			zap.String("name", v.Name),
			zap.Stringer("type", v.Type),
			zap.Any("value", v.Value))
	}
}

// Update merges overrides into the session. They take effect on the next Resolve.
func (c *ServerConfig) Update(overrides map[string]any) {
	for k, v := range overrides {
		c.overrides[k] = v
	}
}

// Overrides returns a copy of the caller overrides.
func (c *ServerConfig) Overrides() map[string]any {
	out := make(map[string]any, len(c.overrides))
	for k, v := range c.overrides {
		out[k] = v
	}
	return out
}

// Set writes a variable directly, converting the value to the declared type.
// Port variables set this way only move the start of the port search.
func (c *ServerConfig) Set(name string, val any) error {
	return c.table.Set(name, val)
}

// Get returns the current value of a variable.
func (c *ServerConfig) Get(name string) (any, bool) {
	v, ok := c.table.Lookup(name)
	if !ok {
		return nil, false
	}
	return v.Value, true
}

// Type returns the declared type of a variable.
func (c *ServerConfig) Type(name string) (template.Type, bool) {
	v, ok := c.table.Lookup(name)
	return v.Type, ok
}

// Keys returns the variable names in declaration order.
func (c *ServerConfig) Keys() []string {
	return c.table.Names()
}

// Variables returns a snapshot of the variable table.
func (c *ServerConfig) Variables() []template.Variable {
	return c.table.Variables()
}

// Template returns the template document of the session.
func (c *ServerConfig) Template() *template.Document {
	return c.doc
}

func (c *ServerConfig) dataDir() string {
	v, ok := c.overrides[server.DataDirKey]
	if !ok || v == nil {
		return ""
	}
	return utils.ToString(v)
}

// Layout returns the resolved layout, or the layout the next Resolve would use.
func (c *ServerConfig) Layout() (storage.Layout, error) {
	if c.resolved {
		return c.layout, nil
	}
	return storage.NewLayout(c.dataDir())
}

// BaseDir returns the resolved base data directory, empty before resolution.
func (c *ServerConfig) BaseDir() string {
	if !c.resolved {
		return ""
	}
	return c.layout.BaseDir
}

// ConfigFile returns the path of the rendered configuration. It is empty until
// Resolve has written the file for the current base directory.
func (c *ServerConfig) ConfigFile() string {
	if !c.rendered {
		return ""
	}
	return c.layout.ConfigFile()
}

// ResolveStorage reruns the storage phase alone, e.g. after data_dir changed.
func (c *ServerConfig) ResolveStorage() error {
	layout, err := c.resolver.Resolve(c.dataDir(), c.table)
	if err != nil {
		return err
	}
	c.layout = layout
	c.resolved = true
	c.rendered = false
	return nil
}

// applyOverrides writes non-port overrides into table and returns the pinned ports.
func (c *ServerConfig) applyOverrides(table *template.Table) (map[string]int, error) {
	keys := make([]string, 0, len(c.overrides))
	for k := range c.overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pinned := make(map[string]int)
	for _, key := range keys {
		if key == server.DataDirKey {
			continue
		}
		if _, ok := table.Lookup(key); !ok {
			return nil, fmt.Errorf("unknown configuration key %q", key)
		}
		val := c.overrides[key]
		if ports.IsPortVariable(key) {
			port, err := utils.ToInt(val)
			if err != nil {
				return nil, fmt.Errorf("override %s: %w", key, err)
			}
			pinned[key] = port
			continue
		}
		if err := table.Set(key, val); err != nil {
			return nil, fmt.Errorf("override %s: %w", key, err)
		}
	}
	return pinned, nil
}

// Resolve runs the whole resolution pass and writes the configuration file.
// No file is written when any phase fails, and every port reservation is
// released before Resolve returns.
func (c *ServerConfig) Resolve() error {
	defer c.allocator.Release()

	table := c.table.Clone()

	pinned, err := c.applyOverrides(table)
	if err != nil {
		return err
	}
	if err := c.allocator.Allocate(table, pinned); err != nil {
		return err
	}
	layout, err := c.resolver.Resolve(c.dataDir(), table)
	if err != nil {
		return err
	}
	if missing := table.Unresolved(); len(missing) > 0 {
		return &UnresolvedError{Name: missing[0], All: missing}
	}

	// The server binds these ports itself once started.
	c.allocator.Release()

	text, err := template.Render(c.doc, table)
	if err != nil {
		return err
	}
	if err := template.WriteFile(layout.ConfigFile(), text); err != nil {
		return err
	}

	c.table = table
	c.layout = layout
	c.resolved = true
	c.rendered = true
	c.logger.Debug("Configuration written", zap.String("path", layout.ConfigFile()))
	c.logVariables()
	return nil
}
