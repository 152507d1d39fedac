// Package compiler wraps the tree-sitter TypeScript grammar behind an
// immutable snapshot model. Nothing outside this package touches the
// binding: each parse is materialized into plain Go nodes whose pointer
// identity and byte positions the rest of the engine builds on.
package compiler

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Parser parses TypeScript source into snapshots. A Parser is not safe for
// concurrent use; create one per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// NewParser returns a parser configured for TypeScript.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(typescript.GetLanguage())
	return &Parser{parser: p}
}

// Parse parses src from scratch.
func (p *Parser) Parse(ctx context.Context, src []byte) (*Tree, error) {
	st, err := p.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	return newTree(st, src), nil
}

// Reparse parses src reusing prior for the regions the edit left alone.
// edit must describe the single splice that turned prior.Text into src.
// The prior snapshot's nodes stay valid in their old coordinates; the
// caller closes prior once reconciliation is done with it.
func (p *Parser) Reparse(ctx context.Context, prior *Tree, edit Edit, src []byte) (*Tree, error) {
	if prior == nil || prior.sitter == nil {
		return p.Parse(ctx, src)
	}
	prior.sitter.Edit(edit.input(prior.Text, src))
	st, err := p.parser.ParseCtx(ctx, prior.sitter, src)
	if err != nil {
		return nil, fmt.Errorf("failed to reparse: %w", err)
	}
	return newTree(st, src), nil
}

// Close releases the parser.
func (p *Parser) Close() {
	p.parser.Close()
}
