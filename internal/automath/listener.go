package automath

import (
	"github.com/dshills/automath/internal/command"
	"github.com/dshills/automath/internal/model"
)

// OnPasteInserted is called when pasted content is about to be inserted
// at sel. The selection is captured right away; the captured range grows
// to cover the inserted content and is scanned by the next
// OnDocumentSettled.
func (p *Plugin) OnPasteInserted(sel model.Range) {
	if p.destroyed {
		return
	}
	p.captures = append(p.captures, p.tracker.Capture(sel))
}

// OnPasteAborted drops captures whose paste never reached the document.
func (p *Plugin) OnPasteAborted() {
	captures := p.captures
	p.captures = nil
	for _, tr := range captures {
		p.tracker.Release(tr)
	}
}

// OnDocumentSettled is called once per finished document change. Every
// queued capture is scanned once and then released.
func (p *Plugin) OnDocumentSettled() {
	captures := p.captures
	p.captures = nil
	for _, tr := range captures {
		p.scan(tr)
		p.tracker.Release(tr)
	}
}

// OnUndoRequested is called before an undo is applied. A conversion
// still in its grace period is cancelled so it never fires against the
// reverted document.
func (p *Plugin) OnUndoRequested() {
	p.committer.Cancel()
}

// scan schedules a conversion when the text of tr is an equation and a
// math node may be inserted.
func (p *Plugin) scan(tr TrackedRange) {
	text := p.tracker.ScanText(tr)
	match, ok := p.matcher.Match(text)
	if !ok {
		return
	}
	if !p.cmds.IsEnabled(command.NameMath) {
		p.logger.Debug("math command disabled, leaving %q", text)
		return
	}

	target, ok := p.tracker.Derive(tr)
	if !ok {
		return
	}
	r, _ := p.tracker.Resolve(target)
	insertAt := p.doc.CreateMarker(r.Start, model.StickToNone)

	p.committer.Schedule(insertAt, match, target)
}
