// Package memory provides an in-memory implementation of the layout
// oracle. It is used by tests and by surfaces that feed synthetic
// measurements instead of reading a live render tree.
package memory

import (
	"sync"

	"github.com/redline-labs/redline-cli/internal/core/domain"
	"github.com/redline-labs/redline-cli/internal/core/ports/driven"
)

// Ensure Oracle implements the interface.
var _ driven.LayoutOracle = (*Oracle)(nil)

// Oracle is an in-memory driven.LayoutOracle. Measurements are set
// explicitly and resize events are fired on demand.
type Oracle struct {
	mu           sync.Mutex
	hasContainer bool
	width        float64
	height       float64
	metrics      map[driven.ElementRef]driven.Metrics
	observers    map[driven.ElementRef]map[int]func()
	nextObserver int
}

// NewOracle creates an empty oracle with no container.
func NewOracle() *Oracle {
	return &Oracle{
		metrics:   make(map[driven.ElementRef]driven.Metrics),
		observers: make(map[driven.ElementRef]map[int]func()),
	}
}

// SetContainerSize installs the content root with the given size.
func (o *Oracle) SetContainerSize(width, height float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.hasContainer = true
	o.width = width
	o.height = height
}

// RemoveContainer simulates the content root unmounting.
func (o *Oracle) RemoveContainer() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.hasContainer = false
}

// SetMetrics installs or replaces a measurement for an element.
func (o *Oracle) SetMetrics(ref driven.ElementRef, m driven.Metrics) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.metrics[ref] = m
}

// RemoveElement simulates an element unmounting.
func (o *Oracle) RemoveElement(ref driven.ElementRef) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.metrics, ref)
}

// Measure returns the element's extent relative to the container.
func (o *Oracle) Measure(ref driven.ElementRef) (driven.Metrics, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.hasContainer {
		return driven.Metrics{}, domain.ErrNoContainer
	}
	m, ok := o.metrics[ref]
	if !ok {
		return driven.Metrics{}, domain.ErrElementMissing
	}
	return m, nil
}

// ObserveResize registers a resize callback for the element.
func (o *Oracle) ObserveResize(ref driven.ElementRef, fn func()) (unsubscribe func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.observers[ref] == nil {
		o.observers[ref] = make(map[int]func())
	}
	id := o.nextObserver
	o.nextObserver++
	o.observers[ref][id] = fn
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.observers[ref], id)
	}
}

// TriggerResize fires all observers registered for the element.
func (o *Oracle) TriggerResize(ref driven.ElementRef) {
	o.mu.Lock()
	fns := make([]func(), 0, len(o.observers[ref]))
	for _, fn := range o.observers[ref] {
		fns = append(fns, fn)
	}
	o.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// ContainerSize returns the current container size.
func (o *Oracle) ContainerSize() (width, height float64, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.hasContainer {
		return 0, 0, false
	}
	return o.width, o.height, true
}

// ObserverCount reports how many observers are registered for the
// element. Intended for tests asserting observer teardown.
func (o *Oracle) ObserverCount(ref driven.ElementRef) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.observers[ref])
}
