package ast

import (
	"sculpt/internal/compiler"
)

// span is the replaced byte range of an edit, in the old text's
// coordinates. A zero-width span describes a pure insertion.
type span struct {
	start, end int
}

// reconcile walks the old and new snapshots in lockstep and settles every
// cached handle of the file. Constructs entirely outside the replaced
// range are rebound onto their counterparts (positions follow the new
// snapshot implicitly); constructs inside the range, and any construct
// whose kind changed, are disposed children-first. Nodes that contain the
// range form the spine and stay bound as long as their kind survives.
// delta is how much the replacement grew the text; offsets after the span
// shift by exactly that much.
func reconcile(c *Context, oldRoot, newRoot *compiler.Node, sp span, delta int) {
	r := reconciler{c: c, sp: sp, delta: delta}
	r.spine(oldRoot, newRoot)
}

type reconciler struct {
	c     *Context
	sp    span
	delta int
}

// spine settles a node whose range contains the replaced span: the handle
// is rebound and the children classified against the span.
func (r *reconciler) spine(oldN, newN *compiler.Node) {
	r.c.rekey(oldN, newN)
	oldKids := oldN.Children()
	newKids := newN.Children()

	// Children entirely before the span pair up left-aligned: the text
	// there is untouched, so indexes line up.
	i := 0
	for ; i < len(oldKids); i++ {
		if oldKids[i].End() > r.sp.start {
			break
		}
		if i < len(newKids) && oldKids[i].Kind() == newKids[i].Kind() {
			r.match(oldKids[i], newKids[i], 0)
		} else {
			r.c.disposeSubtree(oldKids[i])
		}
	}

	// Children whose text sits entirely after the span pair up
	// right-aligned; rebinding shifts their reported positions to the
	// new text. Classification goes by Start, not Pos: a removal that
	// absorbed the gap before a survivor only consumed its trivia.
	j := len(oldKids) - 1
	k := len(newKids) - 1
	for ; j >= i; j, k = j-1, k-1 {
		if oldKids[j].Start() < r.sp.end {
			break
		}
		if k >= i && oldKids[j].Kind() == newKids[k].Kind() {
			r.match(oldKids[j], newKids[k], r.delta)
		} else {
			r.c.disposeSubtree(oldKids[j])
		}
	}

	// What remains overlaps the span. A single survivor that still wraps
	// the span under the same kind continues the spine; everything else
	// is disposed, and whatever the edit created there is wrapped lazily
	// on the next navigation.
	if i == j && i == k && i < len(newKids) &&
		oldKids[i].Kind() == newKids[i].Kind() &&
		!r.insideSpan(oldKids[i]) {
		r.spine(oldKids[i], newKids[i])
		return
	}
	for ; i <= j; i++ {
		r.c.disposeSubtree(oldKids[i])
	}
}

// insideSpan reports whether the node's text lies within the replaced
// span. Such constructs were overwritten and must not rebind, even when
// the replacement parses to the same kind. Leading trivia outside the
// span does not rescue a node whose own text was replaced.
func (r *reconciler) insideSpan(n *compiler.Node) bool {
	return n.Start() >= r.sp.start && n.End() <= r.sp.end
}

// match rebinds a subtree whose text lies entirely outside the replaced
// span. The top pair is already vouched for by its caller; children pair
// by shifted End and kind, not by index, because the surrounding list may
// have gained or lost neighbors (an append past a body's last member
// re-parses the member list with extra children). End anchors the pairing
// since a construct that gained a leading facet keeps its End while its
// Start moves left; a child that grew past its old End has genuinely
// changed and is disposed.
func (r *reconciler) match(oldN, newN *compiler.Node, shift int) {
	r.c.rekey(oldN, newN)
	newKids := newN.Children()
	j := 0
	for _, oc := range oldN.Children() {
		for j < len(newKids) && newKids[j].End() < oc.End()+shift {
			j++
		}
		if j < len(newKids) &&
			newKids[j].End() == oc.End()+shift &&
			newKids[j].Start() <= oc.Start()+shift &&
			newKids[j].Kind() == oc.Kind() {
			r.match(oc, newKids[j], shift)
			j++
		} else {
			r.c.disposeSubtree(oc)
		}
	}
}
