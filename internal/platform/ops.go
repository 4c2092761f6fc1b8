package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/notesrv/pkg/adapters/fs"
	"github.com/aretw0/notesrv/pkg/core"
)

// Init prepares the storage named by uri and returns the configured repository.
// The uri is adapter-specific (a directory path for "fs").
func Init(uri string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.repository != nil {
		return o.repository, nil
	}

	var repo core.Repository
	switch o.adapter {
	case "fs":
		repo = initFS(uri, o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}

	return repo, nil
}

// initFS builds the filesystem adapter from the collected options.
func initFS(path string, o *options) core.Repository {
	mustExist, _ := o.config["must_exist"].(bool)
	suffix, _ := o.config["suffix"].(string)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	if o.logger != nil {
		o.logger.Debug("opening notes directory", "path", path, "must_exist", mustExist)
	}

	return fs.NewRepository(fs.Config{
		Path:         path,
		MustExist:    mustExist,
		Suffix:       suffix,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	})
}
