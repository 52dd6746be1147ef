package inmemory

import (
	"sync"
)

type Snapshot struct {
	ActionTotal    uint64            `json:"action_total"`
	ActionSuccess  uint64            `json:"action_success"`
	ActionConflict uint64            `json:"action_conflict"`
	ActionFailure  uint64            `json:"action_failure"`
	ByActionTag    map[string]uint64 `json:"by_action_tag"`
}

type Recorder struct {
	mu       sync.Mutex
	success  uint64
	conflict uint64
	failure  uint64
	byTag    map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byTag: map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(tag string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byTag[tag]++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionSuccess:  r.success,
		ActionConflict: r.conflict,
		ActionFailure:  r.failure,
		ActionTotal:    r.success + r.conflict + r.failure,
		ByActionTag:    make(map[string]uint64, len(r.byTag)),
	}
	for k, v := range r.byTag {
		out.ByActionTag[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
