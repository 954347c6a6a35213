package tracking

import (
	"sync"

	"github.com/google/uuid"
)

// SubscriptionID identifies a registered listener.
type SubscriptionID string

// Listener receives the full tracking document after every write. It runs
// synchronously on the writer's goroutine and must not modify the document.
type Listener func(Data)

type listeners struct {
	subMu sync.RWMutex
	subs  map[SubscriptionID]Listener
}

// Subscribe registers fn for update notifications.
func (l *listeners) Subscribe(fn Listener) SubscriptionID {
	id := SubscriptionID(uuid.NewString())
	l.subMu.Lock()
	l.subs[id] = fn
	l.subMu.Unlock()
	return id
}

// Unsubscribe removes a listener. It reports whether id was registered.
func (l *listeners) Unsubscribe(id SubscriptionID) bool {
	l.subMu.Lock()
	defer l.subMu.Unlock()
	if _, ok := l.subs[id]; !ok {
		return false
	}
	delete(l.subs, id)
	return true
}

func (l *listeners) broadcast(d Data) {
	l.subMu.RLock()
	fns := make([]Listener, 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.subMu.RUnlock()

	for _, fn := range fns {
		fn(d)
	}
}
