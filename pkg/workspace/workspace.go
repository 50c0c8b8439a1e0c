// Package workspace is the single mutation entry point for the annotation
// state. Every operation reads the current snapshot, computes a new collection
// value, and commits it to the history store; failed operations leave the
// history untouched.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ArshadAliFreelance/audio-annotator/pkg/annotation"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/history"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/logging"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/timecode"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/utils"
)

var (
	// ErrInvalidInput reports a rejected argument (non-audio source, unknown
	// field name). The workspace state is unchanged unless documented
	// otherwise on the operation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIndexOutOfRange reports a stale annotation index; the collection is
	// left unchanged.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// DefaultExportBaseName is used for export filenames when no source media has
// been loaded.
const DefaultExportBaseName = "annotations"

// Workspace binds the mutation API to a history store and tracks the loaded
// source media. Methods are serialized by an internal mutex; callers are
// expected to drive the workspace from one logical thread of control.
type Workspace struct {
	mu     sync.Mutex
	id     uuid.UUID
	store  *history.Store
	source string
}

// New returns an empty workspace with a fresh history.
func New() *Workspace {
	return &Workspace{
		id:    uuid.New(),
		store: history.New(),
	}
}

// ID returns the workspace identity used for log correlation.
func (w *Workspace) ID() uuid.UUID {
	return w.id
}

// LoadSource records the source media for export naming and resets the
// history. A non-audio MIME type is rejected with ErrInvalidInput; the
// workspace still resets to the empty state so a bad upload never leaves
// stale annotations behind.
func (w *Workspace) LoadSource(ctx context.Context, name, mimeType string, size int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	log := logging.NewLogger(ctx)
	w.source = ""
	w.store.Reset()

	mimeType = strings.TrimSpace(strings.Split(mimeType, ";")[0])
	if !strings.HasPrefix(mimeType, "audio/") {
		err := utils.WrapIfNotNil(fmt.Errorf("%w: source %q is not audio (mime type %q)", ErrInvalidInput, name, mimeType))
		log.Errorf("workspace=%s error: %v", w.id, err)
		return err
	}

	w.source = name
	log.Infof("workspace=%s source_loaded name=%q mime=%q size=%d", w.id, name, mimeType, size)
	return nil
}

// Clear drops the source and resets the history to the empty state.
func (w *Workspace) Clear(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.source = ""
	w.store.Reset()
	logging.NewLogger(ctx).Infof("workspace=%s cleared", w.id)
}

// SourceName returns the loaded source media name, or "" when none is loaded.
func (w *Workspace) SourceName() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.source
}

// ExportBaseName returns the source name with its extension stripped, falling
// back to DefaultExportBaseName when no source is loaded.
func (w *Workspace) ExportBaseName() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	base := filepath.Base(w.source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if strings.TrimSpace(base) == "" || base == "." {
		return DefaultExportBaseName
	}
	return base
}

// EditField replaces one scalar field on the annotation at index.
func (w *Workspace) EditField(ctx context.Context, index int, field annotation.Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	log := logging.NewLogger(ctx)
	next := w.store.Current()
	if index < 0 || index >= len(next) {
		err := indexError(index, len(next))
		log.Errorf("workspace=%s error: %v", w.id, err)
		return err
	}
	if !next[index].SetField(field, value) {
		err := utils.WrapIfNotNil(fmt.Errorf("%w: unknown field %q", ErrInvalidInput, field))
		log.Errorf("workspace=%s error: %v", w.id, err)
		return err
	}

	w.store.Commit(next)
	log.Debugf("workspace=%s field_edited index=%d field=%q", w.id, index, field)
	return nil
}

// AddTag appends the trimmed text to the annotation's tag list of the given
// kind. Empty or already-present text is a silent no-op and commits nothing.
func (w *Workspace) AddTag(ctx context.Context, index int, kind annotation.TagKind, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	log := logging.NewLogger(ctx)
	next := w.store.Current()
	if index < 0 || index >= len(next) {
		err := indexError(index, len(next))
		log.Errorf("workspace=%s error: %v", w.id, err)
		return err
	}

	tags, changed := annotation.AddUniqueTag(next[index].Tags(kind), text)
	if !changed {
		return nil
	}
	if !next[index].SetTags(kind, tags) {
		err := utils.WrapIfNotNil(fmt.Errorf("%w: unknown tag kind %q", ErrInvalidInput, kind))
		log.Errorf("workspace=%s error: %v", w.id, err)
		return err
	}

	w.store.Commit(next)
	log.Debugf("workspace=%s tag_added index=%d kind=%q", w.id, index, kind)
	return nil
}

// RemoveTag drops the single occurrence of the trimmed text. Absent text is a
// silent no-op and commits nothing.
func (w *Workspace) RemoveTag(ctx context.Context, index int, kind annotation.TagKind, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	log := logging.NewLogger(ctx)
	next := w.store.Current()
	if index < 0 || index >= len(next) {
		err := indexError(index, len(next))
		log.Errorf("workspace=%s error: %v", w.id, err)
		return err
	}

	tags, changed := annotation.RemoveTag(next[index].Tags(kind), text)
	if !changed {
		return nil
	}
	if !next[index].SetTags(kind, tags) {
		err := utils.WrapIfNotNil(fmt.Errorf("%w: unknown tag kind %q", ErrInvalidInput, kind))
		log.Errorf("workspace=%s error: %v", w.id, err)
		return err
	}

	w.store.Commit(next)
	log.Debugf("workspace=%s tag_removed index=%d kind=%q", w.id, index, kind)
	return nil
}

// InsertAtFront prepends a new annotation whose start and end are both the
// given playback position, so the most recent manual insertion always shows
// first.
func (w *Workspace) InsertAtFront(ctx context.Context, playbackSeconds float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	stamp := timecode.Format(playbackSeconds)
	current := w.store.Current()
	next := make(annotation.Collection, 0, len(current)+1)
	next = append(next, annotation.New(stamp, stamp))
	next = append(next, current...)

	w.store.Commit(next)
	logging.NewLogger(ctx).Debugf("workspace=%s inserted_at_front timecode=%q", w.id, stamp)
}

// DeleteAt removes the annotation at index.
func (w *Workspace) DeleteAt(ctx context.Context, index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	log := logging.NewLogger(ctx)
	current := w.store.Current()
	if index < 0 || index >= len(current) {
		err := indexError(index, len(current))
		log.Errorf("workspace=%s error: %v", w.id, err)
		return err
	}

	next := make(annotation.Collection, 0, len(current)-1)
	next = append(next, current[:index]...)
	next = append(next, current[index+1:]...)

	w.store.Commit(next)
	log.Debugf("workspace=%s deleted index=%d", w.id, index)
	return nil
}

// ReplaceAll is the AI-batch entry point: it normalizes each incoming record
// (nil tag lists become empty, tag lists go through the same trim/unique rule
// as AddTag) and commits the whole batch as one snapshot, so a single undo
// covers the entire batch.
func (w *Workspace) ReplaceAll(ctx context.Context, records annotation.Collection) {
	w.mu.Lock()
	defer w.mu.Unlock()

	next := make(annotation.Collection, len(records))
	for i, record := range records {
		normalized := record
		normalized.SentimentTags = annotation.SanitizeTags(record.SentimentTags)
		normalized.SoundTags = annotation.SanitizeTags(record.SoundTags)
		next[i] = normalized
	}

	w.store.Commit(next)
	logging.NewLogger(ctx).Infof("workspace=%s batch_applied count=%d", w.id, len(next))
}

// Undo steps the history cursor back, reporting whether it moved.
func (w *Workspace) Undo() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.store.Undo()
}

// Redo steps the history cursor forward, reporting whether it moved.
func (w *Workspace) Redo() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.store.Redo()
}

// CanUndo reports whether an undo step is available.
func (w *Workspace) CanUndo() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.store.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (w *Workspace) CanRedo() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.store.CanRedo()
}

// Current returns a copy of the collection the cursor points at.
func (w *Workspace) Current() annotation.Collection {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.store.Current()
}

// HistoryLen returns the number of snapshots in the history.
func (w *Workspace) HistoryLen() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.store.Len()
}

func indexError(index, length int) error {
	return fmt.Errorf("%w: index %d, collection length %d", ErrIndexOutOfRange, index, length)
}
