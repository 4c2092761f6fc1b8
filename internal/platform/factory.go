package platform

import (
	"github.com/aretw0/notesrv/pkg/core"
)

// New wires a repository into a core.Service.
//
//	svc, err := platform.New("./cache", platform.WithLogger(logger))
func New(uri string, opts ...Option) (*core.Service, error) {
	repo, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}
	return core.NewService(repo), nil
}
