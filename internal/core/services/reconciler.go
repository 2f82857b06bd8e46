package services

import (
	"sort"
	"strings"
	"sync"

	"github.com/redline-labs/redline-cli/internal/core/domain"
	"github.com/redline-labs/redline-cli/internal/core/ports/driven"
	"github.com/redline-labs/redline-cli/internal/core/ports/driving"
	"github.com/redline-labs/redline-cli/internal/logger"
)

// Ensure Reconciler implements the interface.
var _ driving.LayoutService = (*Reconciler)(nil)

// Reconciler maps each comment to a vertical offset in the margin
// column such that offsets respect document reading order and no two
// cards overlap.
//
// Comment-list changes are debounced so asynchronously injected
// highlight spans have a chance to settle before measurement; card
// resize events recompute immediately. A highlight that has not been
// rendered yet simply drops out of the current pass and is picked up
// by the next trigger, never surfaced as an error.
type Reconciler struct {
	session driving.ReviewSession
	oracle  driven.LayoutOracle

	gap           float64
	defaultHeight float64
	debounce      *Debouncer

	mu          sync.Mutex
	positions   []domain.CardLayout
	listeners   map[int]func()
	nextListen  int
	observers   map[string]func()
	fingerprint string
	closed      bool

	unsubSession func()
}

// NewReconciler creates a layout service over the session and oracle.
// It subscribes to the session immediately; nil settings use defaults.
func NewReconciler(session driving.ReviewSession, oracle driven.LayoutOracle, margin *domain.MarginSettings) *Reconciler {
	m := domain.MarginSettings{
		CardGap:           domain.DefaultCardGap,
		DefaultCardHeight: domain.DefaultCardHeight,
		DebounceInterval:  domain.DefaultReconcileDebounce,
	}
	if margin != nil {
		m = *margin
	}
	r := &Reconciler{
		session:       session,
		oracle:        oracle,
		gap:           m.CardGap,
		defaultHeight: m.DefaultCardHeight,
		debounce:      NewDebouncer(m.DebounceInterval),
		listeners:     make(map[int]func()),
		observers:     make(map[string]func()),
	}
	r.unsubSession = session.Subscribe(r.onSessionChange)
	return r
}

// onSessionChange schedules a reconcile when the comment list changed.
// Other session mutations (hover, navigation, tabs) do not trigger
// measurement.
func (r *Reconciler) onSessionChange() {
	ids := make([]string, 0)
	for _, c := range r.session.Comments() {
		ids = append(ids, c.ID)
	}
	fp := strings.Join(ids, "\x00")

	r.mu.Lock()
	changed := fp != r.fingerprint
	r.fingerprint = fp
	closed := r.closed
	r.mu.Unlock()

	if changed && !closed {
		r.debounce.Trigger(r.Reconcile)
	}
}

// Reconcile runs a measurement pass immediately. Comments whose
// highlight element is not rendered are skipped for this pass. When
// the container itself is absent the previous layout is left
// untouched: stale-but-stable beats crashing.
func (r *Reconciler) Reconcile() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	if _, _, ok := r.oracle.ContainerSize(); !ok {
		logger.Warn("reconciler: document container unavailable, keeping previous layout")
		return
	}

	comments := r.session.Comments()
	entries := make([]domain.CardLayout, 0, len(comments))
	for _, c := range comments {
		span, err := r.oracle.Measure(driven.HighlightRef(c.ID))
		if err != nil {
			logger.Debug("reconciler: highlight for comment %s not measurable: %v", c.ID, err)
			continue
		}
		height := r.defaultHeight
		if card, err := r.oracle.Measure(driven.CardRef(c.ID)); err == nil && card.Height > 0 {
			height = card.Height
		}
		entries = append(entries, domain.CardLayout{
			ID:     c.ID,
			Top:    span.Top,
			Height: height,
		})
	}

	resolved := ResolveCollisions(entries, r.gap)

	r.syncObservers(comments)

	r.mu.Lock()
	r.positions = resolved
	r.mu.Unlock()
	r.notify()
}

// ResolveCollisions sorts the entries by ascending top and sweeps once
// top-to-bottom, pushing each card down just far enough to keep the
// minimum gap below its predecessor. Later entries never push earlier
// ones back up. The input slice is not modified.
func ResolveCollisions(entries []domain.CardLayout, gap float64) []domain.CardLayout {
	out := append([]domain.CardLayout(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Top < out[j].Top })
	for i := 1; i < len(out); i++ {
		floor := out[i-1].Top + out[i-1].Height + gap
		if out[i].Top < floor {
			out[i].Top = floor
		}
	}
	return out
}

// syncObservers installs a resize observer for each current comment's
// card and tears down observers for comments that left the list, so
// no observer dangles after unmount.
func (r *Reconciler) syncObservers(comments []domain.Comment) {
	current := make(map[string]struct{}, len(comments))
	for _, c := range comments {
		current[c.ID] = struct{}{}
	}

	r.mu.Lock()
	for id, unsub := range r.observers {
		if _, ok := current[id]; !ok {
			unsub()
			delete(r.observers, id)
		}
	}
	missing := make([]string, 0)
	for id := range current {
		if _, ok := r.observers[id]; !ok {
			missing = append(missing, id)
		}
	}
	r.mu.Unlock()

	for _, id := range missing {
		unsub := r.oracle.ObserveResize(driven.CardRef(id), r.Reconcile)
		r.mu.Lock()
		if r.closed {
			r.mu.Unlock()
			unsub()
			return
		}
		r.observers[id] = unsub
		r.mu.Unlock()
	}
}

// Positions returns the most recently published layout.
func (r *Reconciler) Positions() []domain.CardLayout {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.CardLayout(nil), r.positions...)
}

// Position returns the layout entry for one comment.
func (r *Reconciler) Position(commentID string) (domain.CardLayout, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.positions {
		if p.ID == commentID {
			return p, true
		}
	}
	return domain.CardLayout{}, false
}

// Subscribe registers a listener invoked after each published layout.
func (r *Reconciler) Subscribe(fn func()) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextListen
	r.nextListen++
	r.listeners[id] = fn
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// Close cancels any pending debounce, detaches from the session, and
// removes all resize observers.
func (r *Reconciler) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	observers := r.observers
	r.observers = make(map[string]func())
	r.mu.Unlock()

	r.debounce.Stop()
	if r.unsubSession != nil {
		r.unsubSession()
	}
	for _, unsub := range observers {
		unsub()
	}
}

func (r *Reconciler) notify() {
	r.mu.Lock()
	fns := make([]func(), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
