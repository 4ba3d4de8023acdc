package contents

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/jsongraph/pkg/document"
)

// Contents is one stored version of the document.
type Contents struct {
	Text               string    `json:"text" bson:"text"`
	HasExternalChanges bool      `json:"hasExternalChanges" bson:"has_external_changes"`
	SkipDerivedUpdate  bool      `json:"skipDerivedUpdate" bson:"skip_derived_update"`
	Revision           string    `json:"revision" bson:"revision"`
	UpdatedAt          time.Time `json:"updatedAt" bson:"updated_at"`
}

// Sink stores contents.
type Sink interface {
	SetContents(ctx context.Context, c Contents) error
}

// Source loads the last stored contents.
//
// Errors:
//   - NOT_FOUND or FILE_NOT_FOUND: nothing stored yet
type Source interface {
	Load(ctx context.Context) (*Contents, error)
}

// Store is a backend that is both a Sink and a Source.
type Store interface {
	Sink
	Source
	Close() error
}

// New returns contents for text with a fresh revision ID.
func New(text string) Contents {
	return Contents{
		Text:      text,
		Revision:  uuid.NewString(),
		UpdatedAt: time.Now().UTC(),
	}
}

// FromChange builds the contents written for a committed change.
func FromChange(c *document.Change) Contents {
	out := New(c.Text)
	out.HasExternalChanges = c.HasExternalChanges
	out.SkipDerivedUpdate = c.SkipDerivedUpdate
	return out
}

// Observer returns a document.Observer that writes internal changes to sink.
// Changes with HasExternalChanges or SkipDerivedUpdate set are skipped.
func Observer(sink Sink) document.Observer {
	return document.ObserverFunc(func(ctx context.Context, c *document.Change) error {
		if c.HasExternalChanges || c.SkipDerivedUpdate {
			return nil
		}
		return sink.SetContents(ctx, FromChange(c))
	})
}
