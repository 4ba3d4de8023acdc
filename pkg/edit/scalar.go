package edit

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jsongraph/pkg/document"
	"github.com/matzehuels/jsongraph/pkg/errors"
	"github.com/matzehuels/jsongraph/pkg/jsonvalue"
)

// Mutator commits values into a document. *document.Store implements it.
type Mutator interface {
	Mutate(ctx context.Context, acc string, raw jsonvalue.Value) (*document.Change, error)
	Set(ctx context.Context, acc string, value jsonvalue.Value) (*document.Change, error)
}

var _ Mutator = (*document.Store)(nil)

// ScalarEditor edits the value at one accessor through a single line of text.
// It is not safe for concurrent use.
type ScalarEditor struct {
	store  Mutator
	logger *log.Logger

	open     bool
	accessor string
	input    string
}

// NewScalarEditor creates a closed editor. If logger is nil, the default
// logger is used.
func NewScalarEditor(store Mutator, logger *log.Logger) *ScalarEditor {
	if logger == nil {
		logger = log.Default()
	}
	return &ScalarEditor{store: store, logger: logger}
}

// Open starts editing acc. The input starts as the display form of current,
// or empty when current is null.
func (e *ScalarEditor) Open(acc string, current jsonvalue.Value) {
	e.open = true
	e.accessor = acc
	e.input = DisplayString(current)
}

// IsOpen reports whether the editor is open.
func (e *ScalarEditor) IsOpen() bool { return e.open }

// Accessor returns the accessor being edited.
func (e *ScalarEditor) Accessor() string { return e.accessor }

// Input returns the current input text.
func (e *ScalarEditor) Input() string { return e.input }

// SetInput replaces the input text.
func (e *ScalarEditor) SetInput(s string) { e.input = s }

// Save coerces the input and writes it. The editor closes once the change is
// committed, even if an observer failed; on any other error it stays open so
// the input can be corrected.
func (e *ScalarEditor) Save(ctx context.Context) (*document.Change, error) {
	if !e.open {
		return nil, errors.New(errors.ErrCodeInvalidInput, "editor is not open")
	}

	value, err := Coerce(e.input, ModeScalar)
	if err != nil {
		return nil, err
	}

	change, err := e.store.Mutate(ctx, e.accessor, value)
	if change != nil {
		e.Cancel()
	}
	if err != nil {
		e.logger.Debug("scalar save failed", "accessor", e.accessor, "error", err)
	}
	return change, err
}

// Cancel closes the editor without saving.
func (e *ScalarEditor) Cancel() {
	e.open = false
	e.accessor = ""
	e.input = ""
}
