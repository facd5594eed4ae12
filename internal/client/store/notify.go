package store

import "sync"

// Table identifies one of the mirrored tables for change notification.
type Table string

const (
	TableCustomers    Table = "customers"
	TableInvoices     Table = "invoices"
	TableInteractions Table = "interaction_logs"
)

// Notifier fans out table-level change signals to stream subscribers.
// Signals are edge-triggered and coalesced: a subscriber that has not yet
// consumed a pending signal does not accumulate more. Subscribers re-query
// the store on each signal, so losing intermediate signals is harmless.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]*subscription
}

type subscription struct {
	tables map[Table]struct{}
	ch     chan struct{}
}

// NewNotifier returns an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]*subscription)}
}

// Subscribe registers interest in the given tables and returns a signal
// channel plus a cancel function. The channel is closed on cancel.
func (n *Notifier) Subscribe(tables ...Table) (<-chan struct{}, func()) {
	s := &subscription{
		tables: make(map[Table]struct{}, len(tables)),
		ch:     make(chan struct{}, 1),
	}
	for _, t := range tables {
		s.tables[t] = struct{}{}
	}

	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = s
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub.ch)
		}
		n.mu.Unlock()
	}
	return s.ch, cancel
}

// Notify signals every subscriber watching at least one of the given tables.
// Never blocks: a subscriber with a pending signal is skipped.
func (n *Notifier) Notify(tables ...Table) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, s := range n.subs {
		if !s.watchesAny(tables) {
			continue
		}
		select {
		case s.ch <- struct{}{}:
		default:
		}
	}
}

func (s *subscription) watchesAny(tables []Table) bool {
	for _, t := range tables {
		if _, ok := s.tables[t]; ok {
			return true
		}
	}
	return false
}
