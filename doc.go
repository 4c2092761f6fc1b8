// Package notesrv is the composition root for the notes service.
//
// It connects the core domain (pkg/core) with the filesystem adapter
// (pkg/adapters/fs) using the Hexagonal Architecture pattern. The HTTP
// surface lives in pkg/adapters/httpapi and the command line in cmd/notesrv.
//
// Every note is a plain-text file named <name>.txt inside a cache
// directory. The directory is the only store: there is no index and no
// in-memory cache, so every call touches disk.
//
// Usage:
//
//	svc, err := notesrv.New("./cache", notesrv.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	err = svc.CreateNote(ctx, "groceries", "milk, eggs")
//	note, err := svc.GetNote(ctx, "groceries")
package notesrv
