package platform

import (
	"context"

	"github.com/richardhadden/metakit/pkg/adapters/fs"
	"github.com/richardhadden/metakit/pkg/core"
)

// New wires a definition source into a core.Service, initializes the
// source and performs the first load. The path argument is
// adapter-specific; for the default filesystem adapter it is the
// definition root directory.
func New(ctx context.Context, path string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	repo := o.repository
	if repo == nil {
		repo = fs.NewRepository(fs.Config{
			Path:         path,
			Pattern:      o.pattern,
			MustExist:    o.mustExist,
			Strict:       o.strict,
			EventBuffer:  o.eventBuffer,
			Logger:       o.logger,
			ErrorHandler: o.errorHandler,
		})
	}

	if err := repo.Initialize(ctx); err != nil {
		return nil, err
	}

	service := core.NewService(repo)
	if err := service.Load(ctx); err != nil {
		return nil, err
	}

	return service, nil
}
