package document

import (
	"context"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/matzehuels/jsongraph/pkg/accessor"
	"github.com/matzehuels/jsongraph/pkg/jsonvalue"
)

// ChangeKind identifies the store operation that produced a Change.
type ChangeKind string

const (
	KindMutate  ChangeKind = "mutate"
	KindSet     ChangeKind = "set"
	KindReplace ChangeKind = "replace"
	KindClear   ChangeKind = "clear"
)

// Change describes one committed document update.
type Change struct {
	Kind     ChangeKind
	Revision uint64

	// Accessor and Path are set for Mutate and Set.
	Accessor string
	Path     accessor.Path

	// Text is the committed canonical text; Previous is what it replaced.
	Text     string
	Previous string

	// Patch is an RFC 7386 merge patch from Previous to Text.
	Patch []byte

	// HasExternalChanges marks text that came from outside the editor
	// (Replace, Clear). Persistence observers skip such changes.
	HasExternalChanges bool

	// SkipDerivedUpdate asks derived views not to rebuild.
	SkipDerivedUpdate bool
}

// Observer is notified after each commit.
type Observer interface {
	DocumentChanged(ctx context.Context, c *Change) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, c *Change) error

// DocumentChanged calls f.
func (f ObserverFunc) DocumentChanged(ctx context.Context, c *Change) error {
	return f(ctx, c)
}

// mergePatch computes the merge patch between two JSON texts. When either
// side is not an object the patch is the compact new document, which as a
// merge patch replaces the target wholesale.
func mergePatch(prev, next string) []byte {
	nextVal, err := jsonvalue.Parse(next)
	if err != nil {
		return nil
	}
	if prevVal, err := jsonvalue.Parse(prev); err == nil && jsonvalue.IsObject(prevVal) && jsonvalue.IsObject(nextVal) {
		if patch, err := jsonpatch.CreateMergePatch([]byte(prev), []byte(next)); err == nil {
			return patch
		}
	}
	b, _ := jsonvalue.MarshalCompact(nextVal)
	return b
}
