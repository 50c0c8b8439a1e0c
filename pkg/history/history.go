// Package history implements the linear undo/redo store: an append-only log
// of annotation-collection snapshots with a cursor. Undo and redo only move
// the cursor; a fresh commit truncates everything past it.
package history

import (
	"github.com/ArshadAliFreelance/audio-annotator/pkg/annotation"
)

// Store holds the snapshot log and the cursor. The store exclusively owns its
// snapshots: Current returns a copy, and Commit copies what it is given.
// Store is not safe for concurrent use; the workspace serializes access.
type Store struct {
	snapshots []annotation.Collection
	cursor    int
}

// New returns a store holding a single empty snapshot with the cursor on it.
func New() *Store {
	return &Store{
		snapshots: []annotation.Collection{{}},
		cursor:    0,
	}
}

// Commit drops every snapshot past the cursor, appends a copy of next, and
// moves the cursor to it. This is the only way snapshots enter the store, so
// any redo tail is always discarded by a fresh edit.
func (s *Store) Commit(next annotation.Collection) {
	s.snapshots = append(s.snapshots[:s.cursor+1], next.Clone())
	s.cursor = len(s.snapshots) - 1
}

// Undo moves the cursor back one snapshot, reporting whether it moved.
func (s *Store) Undo() bool {
	if s.cursor == 0 {
		return false
	}
	s.cursor--
	return true
}

// Redo moves the cursor forward one snapshot, reporting whether it moved.
func (s *Store) Redo() bool {
	if s.cursor >= len(s.snapshots)-1 {
		return false
	}
	s.cursor++
	return true
}

// CanUndo reports whether Undo would move the cursor.
func (s *Store) CanUndo() bool {
	return s.cursor > 0
}

// CanRedo reports whether Redo would move the cursor.
func (s *Store) CanRedo() bool {
	return s.cursor < len(s.snapshots)-1
}

// Reset replaces the log with a single empty snapshot.
func (s *Store) Reset() {
	s.snapshots = []annotation.Collection{{}}
	s.cursor = 0
}

// Current returns a copy of the snapshot under the cursor.
func (s *Store) Current() annotation.Collection {
	return s.snapshots[s.cursor].Clone()
}

// Len returns the number of snapshots in the log.
func (s *Store) Len() int {
	return len(s.snapshots)
}

// Cursor returns the current cursor position.
func (s *Store) Cursor() int {
	return s.cursor
}
