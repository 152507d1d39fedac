package ast

import (
	"context"
	"fmt"

	"sculpt/internal/compiler"
	"sculpt/internal/textutil"
)

// textChange is one pending splice against the file's current text. Every
// manipulation, however many fragments it batches, reduces to a single
// textChange so that one edit costs one re-parse.
type textChange struct {
	start   int
	oldEnd  int
	newText string
}

// applyTextChange runs the manipulation cycle: splice the text, re-parse
// incrementally, reconcile every live handle of the file against the
// fresh snapshot, swap the file onto it and notify the observer. After it
// returns, surviving handles already report positions in the new text.
func (f *SourceFile) applyTextChange(ch textChange) error {
	oldTree := f.tree
	newText := textutil.Splice(oldTree.Text, ch.start, ch.oldEnd, ch.newText)
	edit := compiler.Edit{
		Start:  ch.start,
		OldEnd: ch.oldEnd,
		NewEnd: ch.start + len(ch.newText),
	}
	newTree, err := f.context.parser.Reparse(context.Background(), oldTree, edit, newText)
	if err != nil {
		return fmt.Errorf("failed to re-parse %s: %w", f.path, err)
	}
	reconcile(f.context, oldTree.Root, newTree.Root,
		span{start: ch.start, end: ch.oldEnd}, len(ch.newText)-(ch.oldEnd-ch.start))
	oldTree.Close()
	f.tree = newTree
	f.version++
	if f.context.observer != nil {
		f.context.observer(FileEdit{
			Path:    f.path,
			Version: f.version,
			Start:   ch.start,
			OldEnd:  ch.oldEnd,
			NewText: ch.newText,
		})
	}
	return nil
}

// declarationAt re-resolves a top-level declaration after an edit that
// replaced its handle, looking through an export wrapper. start is the
// offset of the outermost statement in the new text.
func (f *SourceFile) declarationAt(start int, kind compiler.Kind) (*Node, error) {
	raw, err := f.compilerNode()
	if err != nil {
		return nil, err
	}
	for _, c := range raw.Children() {
		if !c.ContainsPos(start) {
			continue
		}
		if c.Kind() == kind {
			return f.context.getOrCreate(c, f), nil
		}
		if c.Kind() == compiler.KindExportStatement {
			for _, inner := range c.Children() {
				if inner.Kind() == kind {
					return f.context.getOrCreate(inner, f), nil
				}
			}
		}
		break
	}
	return nil, fmt.Errorf("%w: no %s at offset %d after edit", ErrConsistency, kind, start)
}
