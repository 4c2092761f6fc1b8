package notesrv_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/notesrv"
	"github.com/aretw0/notesrv/pkg/core"
)

// Example_basic creates a note in a temporary cache directory and reads it back.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "notesrv-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	svc, err := notesrv.New(tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	if err := svc.CreateNote(ctx, "hello", "first note"); err != nil {
		log.Fatal(err)
	}

	note, err := svc.GetNote(ctx, "hello")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: %s\n", note.Name, note.Text)
	// Output:
	// hello: first note
}

// Example_conflict shows that creating an existing note is refused.
func Example_conflict() {
	tmpDir, err := os.MkdirTemp("", "notesrv-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	svc, err := notesrv.New(tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	_ = svc.CreateNote(ctx, "dup", "x")

	err = svc.CreateNote(ctx, "dup", "y")
	fmt.Println(errors.Is(err, core.ErrExists))

	note, _ := svc.GetNote(ctx, "dup")
	fmt.Println(note.Text)
	// Output:
	// true
	// x
}
