// Implements the RunQueue, which holds all processes that are Runnable at
// the current simulated time. Processes are enqueued in wake order.

package sim

import (
	"fmt"
	"strings"
)

// RunQueue is the delta layer of the event queue: a FIFO of processes
// marked Runnable. FIFO order is what makes same-cycle ties deterministic,
// so nothing may reorder it.
type RunQueue struct {
	queue []*Process
}

// Enqueue adds a process to the back of the run queue.
func (rq *RunQueue) Enqueue(p *Process) {
	rq.queue = append(rq.queue, p)
}

// Dequeue removes and returns the process at the front of the queue.
// Returns nil if the queue is empty.
func (rq *RunQueue) Dequeue() *Process {
	if len(rq.queue) == 0 {
		return nil
	}
	p := rq.queue[0]
	rq.queue[0] = nil
	rq.queue = rq.queue[1:]
	return p
}

// Len returns the number of runnable processes.
func (rq *RunQueue) Len() int {
	return len(rq.queue)
}

func (rq *RunQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range rq.queue {
		sb.WriteString(fmt.Sprint(p))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
