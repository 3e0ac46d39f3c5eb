package sfiles

import "github.com/shikhar5647/sfiles/pkg/flowsheet"

// eventKind identifies a traversal event consumed by the formatter.
type eventKind int

const (
	eventVisit      eventKind = iota // a unit is rendered for the first time
	eventStream                      // a forward stream is taken
	eventOpenBranch                  // a secondary outgoing stream starts
	eventCloseBranch
	eventRecycle // a stream targets an already-visited unit
	eventRootSep // boundary between independent roots
)

// event is one step of the traversal. Unit is set for eventVisit and
// eventRecycle; Stream is set for eventStream.
type event struct {
	Kind   eventKind
	Unit   flowsheet.Unit
	Stream flowsheet.Stream
}

// traverse walks the flowsheet depth-first and returns the event sequence.
//
// Roots are the in-degree-zero units in declaration order; each is walked as
// an independent root separated by eventRootSep. Per unit, outgoing streams
// are taken in declaration order: the first continues the main chain, the
// rest open branches. The visited set is shared across the whole call, so a
// stream into any previously visited unit yields eventRecycle instead of
// descending, which also bounds the walk on cyclic input.
//
// Returns flowsheet.ErrNoEntryPoint when a non-empty flowsheet has no root.
// Units reachable from no root never appear in the result.
func traverse(fs *flowsheet.Flowsheet) ([]event, error) {
	if fs.UnitCount() == 0 {
		return nil, nil
	}
	roots := fs.Roots()
	if len(roots) == 0 {
		return nil, flowsheet.ErrNoEntryPoint
	}

	w := &walker{fs: fs, visited: make(map[string]bool, fs.UnitCount())}
	for i, root := range roots {
		if i > 0 {
			w.emit(event{Kind: eventRootSep})
		}
		w.visited[root.ID] = true
		w.emit(event{Kind: eventVisit, Unit: root})
		w.descend(root)
	}
	return w.events, nil
}

type walker struct {
	fs      *flowsheet.Flowsheet
	visited map[string]bool
	events  []event
}

func (w *walker) emit(e event) { w.events = append(w.events, e) }

// descend processes the outgoing streams of an already-emitted unit.
// Branches are emitted before the main-chain continuation so that they attach
// unambiguously to this unit rather than to the end of the chain.
func (w *walker) descend(u flowsheet.Unit) {
	out := w.fs.Outgoing(u.ID)
	if len(out) == 0 {
		return
	}
	for _, s := range out[1:] {
		w.emit(event{Kind: eventOpenBranch})
		w.follow(s)
		w.emit(event{Kind: eventCloseBranch})
	}
	w.follow(out[0])
}

// follow takes a single stream: forward into an unvisited target, or a
// recycle reference when the target was already visited anywhere in this
// traversal.
func (w *walker) follow(s flowsheet.Stream) {
	target, _ := w.fs.Unit(s.Target)
	if w.visited[target.ID] {
		w.emit(event{Kind: eventRecycle, Unit: target})
		return
	}
	w.visited[target.ID] = true
	w.emit(event{Kind: eventStream, Stream: s})
	w.emit(event{Kind: eventVisit, Unit: target})
	w.descend(target)
}
