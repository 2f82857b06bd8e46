package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redline-labs/redline-cli/internal/adapters/driven/layout/memory"
	"github.com/redline-labs/redline-cli/internal/core/domain"
	"github.com/redline-labs/redline-cli/internal/core/ports/driven"
)

// immediateMargin disables the debounce so list changes reconcile
// synchronously in tests.
func immediateMargin() *domain.MarginSettings {
	return &domain.MarginSettings{
		CardGap:           domain.DefaultCardGap,
		DefaultCardHeight: domain.DefaultCardHeight,
		DebounceInterval:  -1,
	}
}

func TestResolveCollisions_PushesOverlapsDown(t *testing.T) {
	entries := []domain.CardLayout{
		{ID: "a", Top: 100, Height: 50},
		{ID: "b", Top: 140, Height: 60},
	}

	out := ResolveCollisions(entries, 12)

	require.Len(t, out, 2)
	assert.Equal(t, 100.0, out[0].Top)
	assert.Equal(t, 162.0, out[1].Top) // 100 + 50 + 12
}

func TestResolveCollisions_CollisionLaw(t *testing.T) {
	entries := []domain.CardLayout{
		{ID: "d", Top: 90, Height: 200},
		{ID: "a", Top: 10, Height: 40},
		{ID: "c", Top: 80, Height: 30},
		{ID: "b", Top: 12, Height: 100},
	}

	out := ResolveCollisions(entries, 12)

	require.Len(t, out, 4)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i].Top, out[i-1].Top+out[i-1].Height+12,
			"entries %d and %d overlap", i-1, i)
	}
	// Greedy sweep never pushes earlier entries back up.
	assert.Equal(t, 10.0, out[0].Top)
}

func TestResolveCollisions_NoOverlapUnchanged(t *testing.T) {
	entries := []domain.CardLayout{
		{ID: "a", Top: 0, Height: 50},
		{ID: "b", Top: 100, Height: 50},
	}

	out := ResolveCollisions(entries, 12)

	assert.Equal(t, entries, out)
}

func TestResolveCollisions_DoesNotMutateInput(t *testing.T) {
	entries := []domain.CardLayout{
		{ID: "b", Top: 140, Height: 60},
		{ID: "a", Top: 100, Height: 50},
	}

	_ = ResolveCollisions(entries, 12)

	assert.Equal(t, "b", entries[0].ID)
	assert.Equal(t, 140.0, entries[0].Top)
}

func TestReconciler_MeasuresAndPublishes(t *testing.T) {
	s := NewSession(nil, nil)
	oracle := memory.NewOracle()
	oracle.SetContainerSize(800, 2000)
	r := NewReconciler(s, oracle, immediateMargin())
	defer r.Close()

	c1 := s.AddComment(domain.Comment{Content: "one"})
	c2 := s.AddComment(domain.Comment{Content: "two"})

	oracle.SetMetrics(driven.HighlightRef(c1.ID), driven.Metrics{Top: 100, Height: 16})
	oracle.SetMetrics(driven.HighlightRef(c2.ID), driven.Metrics{Top: 140, Height: 16})
	oracle.SetMetrics(driven.CardRef(c1.ID), driven.Metrics{Top: 0, Height: 50})
	oracle.SetMetrics(driven.CardRef(c2.ID), driven.Metrics{Top: 0, Height: 60})

	r.Reconcile()

	positions := r.Positions()
	require.Len(t, positions, 2)
	assert.Equal(t, domain.CardLayout{ID: c1.ID, Top: 100, Height: 50}, positions[0])
	assert.Equal(t, domain.CardLayout{ID: c2.ID, Top: 162, Height: 60}, positions[1])
}

func TestReconciler_UnmountedCardGetsDefaultHeight(t *testing.T) {
	s := NewSession(nil, nil)
	oracle := memory.NewOracle()
	oracle.SetContainerSize(800, 2000)
	r := NewReconciler(s, oracle, immediateMargin())
	defer r.Close()

	c := s.AddComment(domain.Comment{Content: "no card yet"})
	oracle.SetMetrics(driven.HighlightRef(c.ID), driven.Metrics{Top: 40, Height: 16})

	r.Reconcile()

	positions := r.Positions()
	require.Len(t, positions, 1)
	assert.Equal(t, domain.DefaultCardHeight, positions[0].Height)
}

func TestReconciler_MissingHighlightSkipped(t *testing.T) {
	s := NewSession(nil, nil)
	oracle := memory.NewOracle()
	oracle.SetContainerSize(800, 2000)
	r := NewReconciler(s, oracle, immediateMargin())
	defer r.Close()

	measured := s.AddComment(domain.Comment{Content: "rendered"})
	s.AddComment(domain.Comment{Content: "span not injected yet"})
	oracle.SetMetrics(driven.HighlightRef(measured.ID), driven.Metrics{Top: 10, Height: 16})

	r.Reconcile()

	positions := r.Positions()
	require.Len(t, positions, 1)
	assert.Equal(t, measured.ID, positions[0].ID)
}

func TestReconciler_MissingContainerKeepsPreviousLayout(t *testing.T) {
	s := NewSession(nil, nil)
	oracle := memory.NewOracle()
	oracle.SetContainerSize(800, 2000)
	r := NewReconciler(s, oracle, immediateMargin())
	defer r.Close()

	c := s.AddComment(domain.Comment{Content: "stable"})
	oracle.SetMetrics(driven.HighlightRef(c.ID), driven.Metrics{Top: 30, Height: 16})
	r.Reconcile()
	require.Len(t, r.Positions(), 1)

	oracle.RemoveContainer()
	r.Reconcile()

	// Stale-but-stable: the previous layout survives the failed pass.
	assert.Len(t, r.Positions(), 1)
}

func TestReconciler_CommentChangeTriggersRecompute(t *testing.T) {
	s := NewSession(nil, nil)
	oracle := memory.NewOracle()
	oracle.SetContainerSize(800, 2000)
	r := NewReconciler(s, oracle, immediateMargin())
	defer r.Close()

	var published int
	r.Subscribe(func() { published++ })

	c := s.AddComment(domain.Comment{Content: "triggering"})
	oracle.SetMetrics(driven.HighlightRef(c.ID), driven.Metrics{Top: 5, Height: 16})

	require.Equal(t, 1, published)

	// Non-list mutations do not trigger measurement.
	s.HoverHighlight("h1")
	s.SelectComment(c.ID)
	assert.Equal(t, 1, published)

	s.DeleteComment(c.ID)
	assert.Equal(t, 2, published)
	assert.Empty(t, r.Positions())
}

func TestReconciler_DebouncedRecompute(t *testing.T) {
	s := NewSession(nil, nil)
	oracle := memory.NewOracle()
	oracle.SetContainerSize(800, 2000)
	r := NewReconciler(s, oracle, &domain.MarginSettings{
		CardGap:           12,
		DefaultCardHeight: 120,
		DebounceInterval:  20 * time.Millisecond,
	})
	defer r.Close()

	c := s.AddComment(domain.Comment{Content: "late span"})
	// Highlight is injected after the comment exists, inside the
	// debounce window. The tolerated race resolves on the delayed pass.
	oracle.SetMetrics(driven.HighlightRef(c.ID), driven.Metrics{Top: 77, Height: 16})

	assert.Empty(t, r.Positions())
	assert.Eventually(t, func() bool {
		return len(r.Positions()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestReconciler_ResizeRecomputesImmediately(t *testing.T) {
	s := NewSession(nil, nil)
	oracle := memory.NewOracle()
	oracle.SetContainerSize(800, 2000)
	r := NewReconciler(s, oracle, immediateMargin())
	defer r.Close()

	c := s.AddComment(domain.Comment{Content: "growing card"})
	oracle.SetMetrics(driven.HighlightRef(c.ID), driven.Metrics{Top: 10, Height: 16})
	oracle.SetMetrics(driven.CardRef(c.ID), driven.Metrics{Top: 0, Height: 50})
	r.Reconcile()
	require.Equal(t, 50.0, r.Positions()[0].Height)

	oracle.SetMetrics(driven.CardRef(c.ID), driven.Metrics{Top: 0, Height: 90})
	oracle.TriggerResize(driven.CardRef(c.ID))

	assert.Equal(t, 90.0, r.Positions()[0].Height)
}

func TestReconciler_ObserversTornDown(t *testing.T) {
	s := NewSession(nil, nil)
	oracle := memory.NewOracle()
	oracle.SetContainerSize(800, 2000)
	r := NewReconciler(s, oracle, immediateMargin())

	c := s.AddComment(domain.Comment{Content: "observed"})
	oracle.SetMetrics(driven.HighlightRef(c.ID), driven.Metrics{Top: 10, Height: 16})
	r.Reconcile()
	require.Equal(t, 1, oracle.ObserverCount(driven.CardRef(c.ID)))

	// Removing the comment removes its observer on the next pass.
	s.DeleteComment(c.ID)
	assert.Equal(t, 0, oracle.ObserverCount(driven.CardRef(c.ID)))

	// Close tears down whatever remains.
	c2 := s.AddComment(domain.Comment{Content: "second"})
	oracle.SetMetrics(driven.HighlightRef(c2.ID), driven.Metrics{Top: 20, Height: 16})
	require.Equal(t, 1, oracle.ObserverCount(driven.CardRef(c2.ID)))
	r.Close()
	assert.Equal(t, 0, oracle.ObserverCount(driven.CardRef(c2.ID)))
}

func TestReconciler_PositionLookup(t *testing.T) {
	s := NewSession(nil, nil)
	oracle := memory.NewOracle()
	oracle.SetContainerSize(800, 2000)
	r := NewReconciler(s, oracle, immediateMargin())
	defer r.Close()

	c := s.AddComment(domain.Comment{Content: "findable"})
	oracle.SetMetrics(driven.HighlightRef(c.ID), driven.Metrics{Top: 33, Height: 16})
	r.Reconcile()

	p, ok := r.Position(c.ID)
	require.True(t, ok)
	assert.Equal(t, 33.0, p.Top)

	_, ok = r.Position("ghost")
	assert.False(t, ok)
}
