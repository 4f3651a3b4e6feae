package network

import (
	"container/heap"
	"fmt"

	"github.com/emergent-ai/neatcore/neat/math"
)

// Evaluate forward-propagates a set of sensor input values through the
// network defined by nodes/connections, using a priority-queue algorithm
// that drains feed-forward layers in topological order while still
// making progress on nodes that sit on a cycle (recurrent connections).
//
// sensors must be given in the genome's declared sensor order, with the
// bias sensor (if hasBias is true) last; inputs must have length equal
// to the number of non-bias sensors. outputs must be given in
// declaration order; the returned slice mirrors it.
//
// Evaluate is stateful across calls only through each Node's
// OutputValue: callers implementing recurrent behavior should call
// Evaluate repeatedly without clearing nodes between time steps; callers
// that want a fresh pass must call ClearNodes first.
func Evaluate(connections []*Connection, sensors, outputs []*Node, inputs []float64, hasBias bool) ([]float64, error) {
	nonBias := sensors
	if hasBias && len(sensors) > 0 {
		nonBias = sensors[:len(sensors)-1]
	}
	if len(inputs) != len(nonBias) {
		return nil, fmt.Errorf("network: expected %d sensor inputs, got %d", len(nonBias), len(inputs))
	}

	outgoing := make(map[NodeID][]*Connection)
	incoming := make(map[NodeID][]*Connection)
	for _, c := range connections {
		if !c.Enabled {
			continue
		}
		outgoing[c.Source.ID] = append(outgoing[c.Source.ID], c)
		incoming[c.Target.ID] = append(incoming[c.Target.ID], c)
	}

	// Step 1: seed sensor input values.
	for i, s := range nonBias {
		s.InputValue = inputs[i]
	}
	if len(sensors) > len(nonBias) {
		// The bias sensor, by convention the last declared sensor, is
		// pinned to 1.
		sensors[len(sensors)-1].InputValue = 1
	}

	activated := make(map[NodeID]bool)
	pq := &priorityQueue{}
	heap.Init(pq)
	items := make(map[NodeID]*pqItem)
	seq := 0

	enqueue := func(n *Node, priority int) {
		seq++
		if existing, ok := items[n.ID]; ok {
			existing.priority = priority
			existing.seq = seq
			heap.Fix(pq, existing.index)
			return
		}
		item := &pqItem{node: n, priority: priority, seq: seq}
		items[n.ID] = item
		heap.Push(pq, item)
	}

	// Step 2: enqueue every sensor with priority 0.
	for _, s := range sensors {
		enqueue(s, 0)
	}

	// Step 3: drain the queue.
	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		n := item.node
		delete(items, n.ID)

		n.OutputValue = math.Sigmoid(n.InputValue)
		n.InputValue = 0
		activated[n.ID] = true

		for _, c := range outgoing[n.ID] {
			t := c.Target
			t.InputValue += n.OutputValue * c.Weight
			if activated[t.ID] {
				continue
			}
			priority := 1
			for _, in := range incoming[t.ID] {
				if !activated[in.Source.ID] {
					priority = -1
					break
				}
			}
			enqueue(t, priority)
		}
	}

	// Step 4: read output values in declaration order.
	result := make([]float64, len(outputs))
	for i, o := range outputs {
		result[i] = o.OutputValue
	}
	return result, nil
}

// ClearNodes zeroes every node's InputValue. OutputValue is left as-is:
// it is always overwritten the next time the node activates, and callers
// inspecting a network's last output between evaluations should still
// see it.
func ClearNodes(nodes []*Node) {
	for _, n := range nodes {
		n.InputValue = 0
	}
}

// pqItem is one entry in the evaluator's priority queue.
type pqItem struct {
	node     *Node
	priority int
	seq      int
	index    int
}

// priorityQueue implements container/heap.Interface. Highest priority is
// popped first; ties are broken by insertion order (lower seq wins). A
// re-enqueued node takes a fresh seq, so on a tie it ranks as if it had
// just been inserted.
type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority > pq[j].priority
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}
