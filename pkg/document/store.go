package document

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jsongraph/pkg/accessor"
	"github.com/matzehuels/jsongraph/pkg/errors"
	"github.com/matzehuels/jsongraph/pkg/jsonvalue"
	"github.com/matzehuels/jsongraph/pkg/observability"
	"github.com/matzehuels/jsongraph/pkg/tree"
)

// Empty is the text of a new or cleared document.
const Empty = "{}"

// Store owns the canonical document text. It is safe for concurrent use;
// operations run one at a time.
type Store struct {
	mu        sync.Mutex
	text      string
	revision  uint64
	observers []Observer
	logger    *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObservers appends observers, notified in the order given.
func WithObservers(obs ...Observer) Option {
	return func(s *Store) {
		for _, o := range obs {
			if o != nil {
				s.observers = append(s.observers, o)
			}
		}
	}
}

// New creates a store holding "{}".
func New(opts ...Option) *Store {
	s := &Store{
		text:   Empty,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Observe registers an observer after construction. It is notified after
// the observers already registered.
func (s *Store) Observe(o Observer) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Read returns the current canonical text.
func (s *Store) Read() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Revision returns the number of commits so far.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Value parses the current text.
func (s *Store) Value() (jsonvalue.Value, error) {
	text := s.Read()
	v, err := jsonvalue.Parse(text)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "parse document")
	}
	return v, nil
}

// Get returns the value at an accessor. The empty accessor returns the root.
func (s *Store) Get(acc string) (jsonvalue.Value, bool, error) {
	root, err := s.Value()
	if err != nil {
		return nil, false, err
	}
	v, ok := tree.Lookup(root, accessor.Decode(acc))
	return v, ok, nil
}

// Mutate writes raw at the accessor. When both raw and the current value are
// objects the two are deep-merged; otherwise raw replaces the current value.
//
// Errors:
//   - MALFORMED_DOCUMENT: the current text does not parse
//   - UNRESOLVABLE_ACCESSOR: the accessor decodes to the root or crosses a primitive
//   - OBSERVER_FAILED: committed, but an observer returned an error
func (s *Store) Mutate(ctx context.Context, acc string, raw jsonvalue.Value) (*Change, error) {
	return s.write(ctx, KindMutate, acc, raw)
}

// Set writes value at the accessor without merging.
func (s *Store) Set(ctx context.Context, acc string, value jsonvalue.Value) (*Change, error) {
	return s.write(ctx, KindSet, acc, value)
}

func (s *Store) write(ctx context.Context, kind ChangeKind, acc string, raw jsonvalue.Value) (change *Change, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	hooks := observability.Store()
	hooks.OnMutateStart(ctx, acc)
	defer func() {
		var rev uint64
		if change != nil {
			rev = change.Revision
		}
		hooks.OnMutateComplete(ctx, acc, rev, time.Since(start), err)
	}()

	root, err := jsonvalue.Parse(s.text)
	if err != nil {
		s.logger.Warn("document does not parse", "accessor", acc, "error", err)
		return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "parse document")
	}

	path := accessor.Decode(acc)
	if path.IsRoot() {
		return nil, errors.New(errors.ErrCodeUnresolvableAccessor, "accessor %q does not address a value below the root", acc)
	}

	value := raw
	if kind == KindMutate {
		existing, _ := tree.Lookup(root, path)
		value = tree.Resolve(existing, raw)
	}

	root, err = tree.SetAtPath(root, path, value)
	if err != nil {
		if stderrors.Is(err, tree.ErrIndexTooLarge) {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "write %s", acc)
		}
		return nil, errors.Wrap(errors.ErrCodeUnresolvableAccessor, err, "write %s", acc)
	}

	text, err := jsonvalue.Format(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize document")
	}

	change = &Change{
		Kind:     kind,
		Accessor: acc,
		Path:     path,
	}
	return change, s.commit(ctx, change, text)
}

// Replace swaps in new text, for example a file loaded from disk. The text
// must be JSON and is stored as given. Observers see HasExternalChanges.
func (s *Store) Replace(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := jsonvalue.Parse(text); err != nil {
		observability.Store().OnReplace(ctx, len(text), err)
		return errors.Wrap(errors.ErrCodeMalformedDocument, err, "replace document")
	}

	err := s.commit(ctx, &Change{Kind: KindReplace, HasExternalChanges: true}, text)
	observability.Store().OnReplace(ctx, len(text), err)
	return err
}

// Clear resets the document to "{}".
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	observability.Store().OnClear(ctx)
	return s.commit(ctx, &Change{Kind: KindClear, HasExternalChanges: true}, Empty)
}

// commit stores text, fills in change and notifies every observer. Callers
// hold s.mu.
func (s *Store) commit(ctx context.Context, change *Change, text string) error {
	change.Previous = s.text
	change.Text = text
	change.Patch = mergePatch(s.text, text)

	s.revision++
	change.Revision = s.revision
	s.text = text

	s.logger.Debug("document committed",
		"kind", change.Kind,
		"accessor", change.Accessor,
		"revision", change.Revision,
		"bytes", len(text))

	return s.notify(ctx, change)
}

func (s *Store) notify(ctx context.Context, change *Change) error {
	var errs []error
	for _, o := range s.observers {
		if err := o.DocumentChanged(ctx, change); err != nil {
			name := fmt.Sprintf("%T", o)
			s.logger.Warn("observer failed", "observer", name, "revision", change.Revision, "error", err)
			observability.Store().OnObserverError(ctx, name, err)
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Wrap(errors.ErrCodeObserver, stderrors.Join(errs...), "revision %d committed", change.Revision)
}
