package network

import (
	"encoding/json"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"

	"github.com/lais-vegas/vegas/core/log"
)

// Handler receives one event payload. Handlers may be user supplied, so
// the dispatcher quarantines them: a panic is logged and the next event
// still flows.
type Handler func(data json.RawMessage)

type Dispatcher struct {
	imp  *treemap.Map // event name -> []Handler
	lock sync.RWMutex
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		imp: treemap.NewWith(utils.StringComparator),
	}
}

// On registers a handler for an event name. Multiple handlers per event
// run in registration order.
func (d *Dispatcher) On(event string, h Handler) {
	d.lock.Lock()
	defer d.lock.Unlock()
	var hs []Handler
	if v, found := d.imp.Get(event); found {
		hs = v.([]Handler)
	}
	d.imp.Put(event, append(hs, h))
}

// Dispatch runs the handlers registered for event, one at a time, in
// the caller's goroutine. Unhandled events are dropped silently.
func (d *Dispatcher) Dispatch(event string, data json.RawMessage) {
	d.lock.RLock()
	v, found := d.imp.Get(event)
	d.lock.RUnlock()
	if !found {
		return
	}
	for _, h := range v.([]Handler) {
		safeCall(event, h, data)
	}
}

func safeCall(event string, h Handler, data json.RawMessage) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("handler for %q panicked: %v", event, r)
		}
	}()
	h(data)
}
