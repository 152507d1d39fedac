package compiler

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Edit describes one contiguous text replacement in byte offsets: the old
// buffer's [Start, OldEnd) was replaced and now ends at NewEnd in the new
// buffer.
type Edit struct {
	Start  int
	OldEnd int
	NewEnd int
}

// Delta returns the net length change the edit applied.
func (e Edit) Delta() int {
	return e.NewEnd - e.OldEnd
}

func (e Edit) input(oldSrc, newSrc []byte) sitter.EditInput {
	return sitter.EditInput{
		StartIndex:  uint32(e.Start),
		OldEndIndex: uint32(e.OldEnd),
		NewEndIndex: uint32(e.NewEnd),
		StartPoint:  calculatePoint(oldSrc[:e.Start]),
		OldEndPoint: calculatePoint(oldSrc[:e.OldEnd]),
		NewEndPoint: calculatePoint(newSrc[:e.NewEnd]),
	}
}

// calculatePoint computes the row/column coordinate at the end of content.
func calculatePoint(content []byte) sitter.Point {
	point := sitter.Point{Row: 0, Column: 0}
	for _, b := range content {
		if b == '\n' {
			point.Row++
			point.Column = 0
		} else {
			point.Column++
		}
	}
	return point
}
