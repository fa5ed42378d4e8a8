// Package local runs a communication group inside one process.
//
// Each rank is a goroutine holding its own *Comm. Ranks are connected by one
// buffered channel per ordered (src, dst) pair; every send copies its payload,
// so no buffer is ever shared between ranks. Collectives are routed through
// rank 0 (comm.Root) for barriers; Bcast and Gatherv use direct root links.
//
// A failing rank aborts the whole group: blocked collectives on the other
// ranks return comm.ErrAborted instead of hanging.
package local

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/matvecbench/comm"
)

// linkDepth is the per-link channel buffer. One slot lets a root fan out
// to every rank without waiting on each receiver in turn.
const linkDepth = 1

type kind uint8

const (
	kindData kind = iota + 1
	kindBarrier
)

func (k kind) String() string {
	switch k {
	case kindData:
		return "data"
	case kindBarrier:
		return "barrier"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

type message struct {
	kind kind
	data []float64
}

// Group is a fixed set of in-process ranks.
type Group struct {
	size  int
	links [][]chan message // links[src][dst]
	comms []*Comm
	epoch time.Time

	done  chan struct{}
	once  sync.Once
	cause error
}

// NewGroup wires size ranks together.
func NewGroup(size int) (*Group, error) {
	if size < 1 {
		return nil, fmt.Errorf("local: size=%d: %w", size, comm.ErrInvalidGroup)
	}
	g := &Group{
		size:  size,
		links: make([][]chan message, size),
		comms: make([]*Comm, size),
		epoch: time.Now(),
		done:  make(chan struct{}),
	}
	for src := 0; src < size; src++ {
		g.links[src] = make([]chan message, size)
		for dst := 0; dst < size; dst++ {
			if src != dst {
				g.links[src][dst] = make(chan message, linkDepth)
			}
		}
		g.comms[src] = &Comm{g: g, rank: src}
	}

	return g, nil
}

// Size returns the number of ranks in the group.
func (g *Group) Size() int { return g.size }

// Comm returns the communicator of rank r.
func (g *Group) Comm(r int) (*Comm, error) {
	if r < 0 || r >= g.size {
		return nil, fmt.Errorf("local: rank=%d size=%d: %w", r, g.size, comm.ErrInvalidRank)
	}

	return g.comms[r], nil
}

// Abort tears the group down. The first cause wins; blocked and future
// collectives on every rank return comm.ErrAborted.
func (g *Group) Abort(cause error) {
	g.once.Do(func() {
		g.cause = cause
		close(g.done)
	})
}

// Err returns the cause passed to the first Abort, or nil.
func (g *Group) Err() error {
	select {
	case <-g.done:
		return g.cause
	default:
		return nil
	}
}

// Run forms a group of size ranks and calls fn once per rank, each on its own
// goroutine. It returns after every rank has returned. If any rank fails, the
// group is aborted and the first failure is returned.
func Run(size int, fn func(c comm.Communicator) error) error {
	g, err := NewGroup(size)
	if err != nil {
		return err
	}
	var eg errgroup.Group
	for _, c := range g.comms {
		eg.Go(func() error {
			defer c.Close()
			if err := fn(c); err != nil {
				g.Abort(fmt.Errorf("rank %d: %w", c.rank, err))
				return err
			}
			return nil
		})
	}
	werr := eg.Wait()
	if cause := g.Err(); cause != nil {
		return cause
	}

	return werr
}

// Comm is one rank of a Group. It is not safe for concurrent use by
// multiple goroutines; each rank drives its own Comm.
type Comm struct {
	g      *Group
	rank   int
	closed atomic.Bool
}

var _ comm.Communicator = (*Comm)(nil)

// Rank returns the rank of this communicator.
func (c *Comm) Rank() int { return c.rank }

// Size returns the group size.
func (c *Comm) Size() int { return c.g.size }

// Wtime returns seconds elapsed since the group was formed.
func (c *Comm) Wtime() float64 { return time.Since(c.g.epoch).Seconds() }

// Close marks this rank closed. It does not affect other ranks.
func (c *Comm) Close() error {
	c.closed.Store(true)

	return nil
}

func (c *Comm) live() error {
	if c.closed.Load() {
		return comm.ErrClosed
	}
	if c.g.Err() != nil {
		return comm.ErrAborted
	}

	return nil
}

// send copies data and delivers it to dst.
func (c *Comm) send(dst int, k kind, data []float64) error {
	msg := message{kind: k, data: make([]float64, len(data))}
	copy(msg.data, data)
	select {
	case c.g.links[c.rank][dst] <- msg:
		return nil
	case <-c.g.done:
		return comm.ErrAborted
	}
}

// recv takes the next message from src and checks its kind.
func (c *Comm) recv(src int, want kind) ([]float64, error) {
	select {
	case msg := <-c.g.links[src][c.rank]:
		if msg.kind != want {
			return nil, fmt.Errorf("local: rank %d from %d: got %v, want %v: %w",
				c.rank, src, msg.kind, want, comm.ErrProtocol)
		}
		return msg.data, nil
	case <-c.g.done:
		return nil, comm.ErrAborted
	}
}

// Bcast replicates root's buf on every rank.
func (c *Comm) Bcast(buf []float64, root int) error {
	if err := c.live(); err != nil {
		return err
	}
	if err := comm.CheckRoot(root, c.g.size); err != nil {
		return err
	}
	if c.rank == root {
		for dst := 0; dst < c.g.size; dst++ {
			if dst == root {
				continue
			}
			if err := c.send(dst, kindData, buf); err != nil {
				return err
			}
		}
		return nil
	}
	data, err := c.recv(root, kindData)
	if err != nil {
		return err
	}
	if len(data) != len(buf) {
		return fmt.Errorf("local: bcast: received %d, buffer %d: %w", len(data), len(buf), comm.ErrCountMismatch)
	}
	copy(buf, data)

	return nil
}

// Gatherv assembles every rank's send buffer into recv on root.
func (c *Comm) Gatherv(send, recv []float64, counts, displs []int, root int) error {
	if err := c.live(); err != nil {
		return err
	}
	if err := comm.CheckRoot(root, c.g.size); err != nil {
		return err
	}
	if c.rank != root {
		return c.send(root, kindData, send)
	}
	if err := comm.CheckGatherv(send, recv, counts, displs, root, c.g.size); err != nil {
		return err
	}
	copy(recv[displs[root]:displs[root]+counts[root]], send)
	for src := 0; src < c.g.size; src++ {
		if src == root {
			continue
		}
		data, err := c.recv(src, kindData)
		if err != nil {
			return err
		}
		if len(data) != counts[src] {
			return fmt.Errorf("local: gatherv: rank %d sent %d, counts[%d]=%d: %w",
				src, len(data), src, counts[src], comm.ErrCountMismatch)
		}
		copy(recv[displs[src]:displs[src]+counts[src]], data)
	}

	return nil
}

// Barrier is a gather of empty tokens on comm.Root followed by a release fan-out.
func (c *Comm) Barrier() error {
	if err := c.live(); err != nil {
		return err
	}
	if c.rank != comm.Root {
		if err := c.send(comm.Root, kindBarrier, nil); err != nil {
			return err
		}
		_, err := c.recv(comm.Root, kindBarrier)
		return err
	}
	for src := 1; src < c.g.size; src++ {
		if _, err := c.recv(src, kindBarrier); err != nil {
			return err
		}
	}
	for dst := 1; dst < c.g.size; dst++ {
		if err := c.send(dst, kindBarrier, nil); err != nil {
			return err
		}
	}

	return nil
}
