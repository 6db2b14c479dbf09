package internal

import (
	"encoding/json"
	"strconv"
	"sync"
)

// Persister writes state snapshots to the KV slot. Writes are fire-and-forget:
// a failed write (quota, serialization, closed database) is logged at warn and
// discarded, never surfaced to the caller of a state operation. In-memory
// state stays authoritative.
//
// Each scheduled write carries a sequence number taken in scheduling order; a
// write that finds a later sequence already in the slot is dropped, so the
// slot always holds the newest scheduled snapshot no matter how the write
// goroutines interleave.
type Persister struct {
	kv *KV
	wg sync.WaitGroup

	mu          sync.Mutex
	seq         uint64
	writtenSeq  uint64
	sidebarSeq  uint64
	sidebarDone uint64
}

// NewPersister creates a persister over the given KV slot.
func NewPersister(kv *KV) *Persister {
	return &Persister{kv: kv}
}

// SaveAsync schedules a snapshot write and returns immediately. Callers must
// schedule snapshots in state-transition order; Store.mutate does so under
// the store lock.
func (p *Persister) SaveAsync(snap PersistedState) {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.save(seq, snap)
	}()
}

func (p *Persister) save(seq uint64, snap PersistedState) {
	defer func() {
		if r := recover(); r != nil {
			LogWarn("snapshot write panicked: %v", r)
		}
	}()

	data, err := json.Marshal(snap)
	if err != nil {
		LogWarn("dropping snapshot: %v", &SnapshotError{Key: StateKey, Err: err})
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq < p.writtenSeq {
		LogDebug("skipping superseded snapshot write %d (latest %d)", seq, p.writtenSeq)
		return
	}
	p.writtenSeq = seq
	if err := p.kv.Put(StateKey, string(data)); err != nil {
		LogWarn("dropping snapshot: %v", err)
	}
}

// SaveSidebarAsync writes the sidebar flag under its own key, independent of
// the main snapshot, so it can be read before the snapshot is parsed. Writes
// are sequenced like snapshot writes: a superseded flag value is dropped.
func (p *Persister) SaveSidebarAsync(collapsed bool) {
	p.mu.Lock()
	p.sidebarSeq++
	seq := p.sidebarSeq
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		p.mu.Lock()
		defer p.mu.Unlock()
		if seq < p.sidebarDone {
			return
		}
		p.sidebarDone = seq
		if err := p.kv.Put(SidebarKey, strconv.FormatBool(collapsed)); err != nil {
			LogWarn("dropping sidebar flag: %v", err)
		}
	}()
}

// Flush blocks until every scheduled write has completed.
func (p *Persister) Flush() {
	p.wg.Wait()
}

// Load rebuilds state from the slot. Errors degrade to defaults: a missing or
// unreadable snapshot yields fresh state, and the sidebar flag is merged in
// from its own key when present.
func (p *Persister) Load() State {
	var data []byte
	if value, ok, err := p.kv.Get(StateKey); err != nil {
		LogWarn("failed to read snapshot, starting fresh: %v", err)
	} else if ok {
		data = []byte(value)
	}

	st := Rehydrate(data)

	if collapsed, ok := p.LoadSidebar(); ok {
		st.View.SidebarCollapsed = collapsed
	}
	return st
}

// LoadSidebar reads the early sidebar flag. ok is false when the key is
// absent or unreadable.
func (p *Persister) LoadSidebar() (collapsed, ok bool) {
	value, ok, err := p.kv.Get(SidebarKey)
	if err != nil || !ok {
		return false, false
	}
	collapsed, parseErr := strconv.ParseBool(value)
	if parseErr != nil {
		LogWarn("sidebar flag is corrupt, ignoring: %v", parseErr)
		return false, false
	}
	return collapsed, true
}
