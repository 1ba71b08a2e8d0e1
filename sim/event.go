// Defines the timed wake-up queue: the future-time layer of the event
// queue. Delta-layer work never goes through this queue; it lives in the
// scheduler's runnable FIFO.

package sim

import "container/heap"

// timerEntry is one pending Timeout-wait wake-up.
// generation snapshots the process's resume counter at arming time; if the
// process resumed for any other reason before the timer fires (an edge won
// a mixed wait), the entry is stale and is skipped on pop.
type timerEntry struct {
	time       int64
	seq        uint64
	proc       *Process
	generation uint64
}

// timerQueue implements heap.Interface with deterministic ordering.
// Order by: timestamp → insertion sequence. The sequence tie-break makes
// same-time entries pop FIFO, so ties at one simulated time activate in
// arming order.
type timerQueue []*timerEntry

func (tq timerQueue) Len() int { return len(tq) }

func (tq timerQueue) Less(i, j int) bool {
	if tq[i].time != tq[j].time {
		return tq[i].time < tq[j].time
	}
	return tq[i].seq < tq[j].seq
}

func (tq timerQueue) Swap(i, j int) { tq[i], tq[j] = tq[j], tq[i] }

func (tq *timerQueue) Push(x any) {
	*tq = append(*tq, x.(*timerEntry))
}

func (tq *timerQueue) Pop() any {
	old := *tq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*tq = old[0 : n-1]
	return item
}

// live reports whether the entry still corresponds to a waiting process.
func (e *timerEntry) live() bool {
	return e.proc.generation == e.generation && e.proc.state != StateTerminated
}

// schedule arms a wake-up entry.
func (tq *timerQueue) schedule(e *timerEntry) {
	heap.Push(tq, e)
}

// peekLive discards stale entries from the front and returns the next live
// one without removing it, or nil if none remain.
func (tq *timerQueue) peekLive() *timerEntry {
	for tq.Len() > 0 {
		head := (*tq)[0]
		if head.live() {
			return head
		}
		heap.Pop(tq)
	}
	return nil
}

// popNext removes and returns the front entry.
func (tq *timerQueue) popNext() *timerEntry {
	return heap.Pop(tq).(*timerEntry)
}
