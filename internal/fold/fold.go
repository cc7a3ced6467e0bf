// Package fold implements the fold/unfold archival operations (§4.6): a
// sequence of messages is compressed to a single FoldStatement and can
// later be restored byte-for-byte.
package fold

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sagproto/sag/internal/ast"
)

// FoldError reports an operation against an unknown fold-id.
type FoldError struct {
	Code   ast.ErrorCode
	FoldID string
}

func (e FoldError) Error() string {
	return fmt.Sprintf("fold error (%s): unknown fold id %q", e.Code, e.FoldID)
}

type entry struct {
	messages []ast.Message
	summary  string
	state    *ast.ObjectMap
}

// Engine stores folded message sequences keyed by a generated fold-id,
// guaranteeing unfold restores exactly what was folded.
type Engine struct {
	entries map[string]entry
}

// NewEngine returns an empty, ready-to-use Engine.
func NewEngine() *Engine {
	return &Engine{entries: make(map[string]entry)}
}

// Fold stores ms under a freshly generated id and returns the
// FoldStatement a caller can place on the wire. The id is "fold-"
// followed by a UUID, so it always lexes as a wire identifier.
func (e *Engine) Fold(ms []ast.Message, summary string, state *ast.ObjectMap) *ast.FoldStatement {
	id := "fold-" + uuid.NewString()
	stored := make([]ast.Message, len(ms))
	copy(stored, ms)
	e.entries[id] = entry{messages: stored, summary: summary, state: state}
	return &ast.FoldStatement{FoldID: id, Summary: summary, State: state}
}

// Unfold returns the message sequence stored under foldID, or
// UNKNOWN_FOLD_ID if none exists.
func (e *Engine) Unfold(foldID string) ([]ast.Message, error) {
	ent, ok := e.entries[foldID]
	if !ok {
		return nil, FoldError{Code: ast.ErrUnknownFoldID, FoldID: foldID}
	}
	out := make([]ast.Message, len(ent.messages))
	copy(out, ent.messages)
	return out, nil
}

// Contains reports whether foldID is currently stored.
func (e *Engine) Contains(foldID string) bool {
	_, ok := e.entries[foldID]
	return ok
}

// Remove deletes foldID, if present. A no-op otherwise.
func (e *Engine) Remove(foldID string) {
	delete(e.entries, foldID)
}

// Clear discards every stored fold.
func (e *Engine) Clear() {
	e.entries = make(map[string]entry)
}

// Size returns the number of currently stored folds.
func (e *Engine) Size() int {
	return len(e.entries)
}
