package storage

import (
	"runtime"

	"milvus-server/core/template"

	"go.uber.org/zap"
)

// Resolver establishes the directory layout and owns the path variables.
type Resolver struct {
	goos   string
	logger *zap.Logger
}

// NewResolver creates a resolver for the running platform.
func NewResolver(logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{goos: runtime.GOOS, logger: logger}
}

// Resolve creates the layout under base and overwrites every path variable in
// table. Calling it again with another base recomputes all of them.
func (r *Resolver) Resolve(base string, table *template.Table) (Layout, error) {
	layout, err := NewLayout(base)
	if err != nil {
		return Layout{}, err
	}
	if err := layout.Ensure(); err != nil {
		return Layout{}, err
	}
	for _, pv := range layout.PathVariables(r.goos) {
		if err := table.Put(pv.Name, template.TypeString, pv.Value); err != nil {
			return Layout{}, err
		}
	}
	r.logger.Debug("Resolved storage", zap.String("base_dir", layout.BaseDir))
	return layout, nil
}
