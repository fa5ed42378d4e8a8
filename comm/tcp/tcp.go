// Package tcp forms a communication group across processes over TCP.
//
// The topology is a star around rank 0 (comm.Root): rank 0 listens on the
// coordinator address, every other rank dials it once. Bcast and Barrier fan
// out from rank 0, Gatherv fans in to it. Roots other than rank 0 are not
// supported.
//
// Wire format, little endian, one frame per message:
//
//	kind  uint32   frame kind (hello, ready, data, barrier)
//	rank  uint32   sender rank
//	size  uint32   sender's view of the group size
//	count uint32   number of float64 values that follow
//	data  count × float64
package tcp

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/matvecbench/comm"
)

// DefaultDialTimeout bounds how long a worker keeps retrying the coordinator
// while the group is being formed.
const DefaultDialTimeout = 30 * time.Second

// dialBackoff is the pause between two dial attempts.
const dialBackoff = 50 * time.Millisecond

type kind uint32

const (
	kindHello kind = iota + 1
	kindReady
	kindData
	kindBarrier
)

type header struct {
	Kind  uint32
	Rank  uint32
	Size  uint32
	Count uint32
}

// Config describes one rank's place in the group.
type Config struct {
	Rank        int           // this process's rank
	Size        int           // group size
	Addr        string        // coordinator host:port (listen address on rank 0)
	DialTimeout time.Duration // zero means DefaultDialTimeout
}

// peer is a buffered framed connection.
type peer struct {
	conn net.Conn
	r    *bufio.Reader
	w    *bufio.Writer
}

func newPeer(conn net.Conn) *peer {
	return &peer{conn: conn, r: bufio.NewReader(conn), w: bufio.NewWriter(conn)}
}

// frameCount converts a payload length to the header's count field.
func frameCount(n int) (uint32, error) {
	if uint64(n) > math.MaxUint32 {
		return 0, fmt.Errorf("tcp: %d values do not fit one frame: %w", n, comm.ErrCountMismatch)
	}

	return uint32(n), nil
}

func (p *peer) write(h header, data []float64) error {
	count, err := frameCount(len(data))
	if err != nil {
		return err
	}
	h.Count = count
	if err := binary.Write(p.w, binary.LittleEndian, h); err != nil {
		return err
	}
	if len(data) > 0 {
		if err := binary.Write(p.w, binary.LittleEndian, data); err != nil {
			return err
		}
	}

	return p.w.Flush()
}

func (p *peer) readHeader(want kind) (header, error) {
	var h header
	if err := binary.Read(p.r, binary.LittleEndian, &h); err != nil {
		return h, err
	}
	if kind(h.Kind) != want {
		return h, fmt.Errorf("tcp: got frame kind %d, want %d: %w", h.Kind, want, comm.ErrProtocol)
	}

	return h, nil
}

// readInto reads a frame of kind want whose payload must fill dst exactly.
func (p *peer) readInto(want kind, dst []float64) error {
	h, err := p.readHeader(want)
	if err != nil {
		return err
	}
	if int(h.Count) != len(dst) {
		return fmt.Errorf("tcp: rank %d sent %d values, expected %d: %w", h.Rank, h.Count, len(dst), comm.ErrCountMismatch)
	}
	if len(dst) == 0 {
		return nil
	}

	return binary.Read(p.r, binary.LittleEndian, dst)
}

// Comm is one rank of a TCP group.
type Comm struct {
	rank, size int
	epoch      time.Time
	ln         net.Listener // rank 0 only
	peers      []*peer      // rank 0: indexed by rank; others: peers[0] is the coordinator
	closed     atomic.Bool
}

var _ comm.Communicator = (*Comm)(nil)

// Join forms the group described by cfg and returns once every rank has
// connected. Rank 0 listens on cfg.Addr; other ranks dial it.
func Join(cfg Config) (*Comm, error) {
	if cfg.Size < 1 {
		return nil, fmt.Errorf("tcp: size=%d: %w", cfg.Size, comm.ErrInvalidGroup)
	}
	if cfg.Rank < 0 || cfg.Rank >= cfg.Size {
		return nil, fmt.Errorf("tcp: rank=%d size=%d: %w", cfg.Rank, cfg.Size, comm.ErrInvalidRank)
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	if cfg.Rank == comm.Root {
		ln, err := net.Listen("tcp", cfg.Addr)
		if err != nil {
			return nil, fmt.Errorf("tcp: listen %s: %w", cfg.Addr, err)
		}
		return Serve(ln, cfg.Size)
	}

	return dial(cfg)
}

// Serve runs the coordinator side of group formation on an existing listener.
// It takes ownership of ln and closes it with the returned Comm.
func Serve(ln net.Listener, size int) (*Comm, error) {
	c := &Comm{rank: comm.Root, size: size, epoch: time.Now(), ln: ln, peers: make([]*peer, size)}
	for joined := 1; joined < size; {
		conn, err := ln.Accept()
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("tcp: accept: %w", err)
		}
		p := newPeer(conn)
		h, err := p.readHeader(kindHello)
		if err != nil {
			conn.Close()
			c.Close()
			return nil, fmt.Errorf("tcp: hello: %w", err)
		}
		r := int(h.Rank)
		if int(h.Size) != size || r <= comm.Root || r >= size || c.peers[r] != nil {
			conn.Close()
			c.Close()
			return nil, fmt.Errorf("tcp: hello from rank %d of %d (group of %d): %w",
				h.Rank, h.Size, size, comm.ErrInvalidRank)
		}
		c.peers[r] = p
		joined++
	}
	// Everyone is in: release the workers.
	for r := 1; r < size; r++ {
		if err := c.peers[r].write(header{Kind: uint32(kindReady), Size: uint32(size)}, nil); err != nil {
			c.Close()
			return nil, fmt.Errorf("tcp: ready to rank %d: %w", r, err)
		}
	}

	return c, nil
}

func dial(cfg Config) (*Comm, error) {
	deadline := time.Now().Add(cfg.DialTimeout)
	var conn net.Conn
	var err error
	for {
		conn, err = net.DialTimeout("tcp", cfg.Addr, time.Until(deadline))
		if err == nil {
			break
		}
		if time.Now().Add(dialBackoff).After(deadline) {
			return nil, fmt.Errorf("tcp: dial %s: %w", cfg.Addr, err)
		}
		time.Sleep(dialBackoff)
	}
	p := newPeer(conn)
	hello := header{Kind: uint32(kindHello), Rank: uint32(cfg.Rank), Size: uint32(cfg.Size)}
	if err := p.write(hello, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tcp: hello: %w", err)
	}
	if _, err := p.readHeader(kindReady); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tcp: waiting for group: %w", err)
	}

	return &Comm{rank: cfg.Rank, size: cfg.Size, epoch: time.Now(), peers: []*peer{p}}, nil
}

// Rank returns the rank of this communicator.
func (c *Comm) Rank() int { return c.rank }

// Size returns the group size.
func (c *Comm) Size() int { return c.size }

// Wtime returns seconds elapsed since this rank joined the group.
func (c *Comm) Wtime() float64 { return time.Since(c.epoch).Seconds() }

// Addr returns the listening address on rank 0 and nil elsewhere.
func (c *Comm) Addr() net.Addr {
	if c.ln == nil {
		return nil
	}

	return c.ln.Addr()
}

// Close closes every connection and, on rank 0, the listener.
func (c *Comm) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	var errs []error
	for _, p := range c.peers {
		if p != nil {
			errs = append(errs, p.conn.Close())
		}
	}
	if c.ln != nil {
		errs = append(errs, c.ln.Close())
	}

	return errors.Join(errs...)
}

func (c *Comm) check(root int) error {
	if c.closed.Load() {
		return comm.ErrClosed
	}
	if err := comm.CheckRoot(root, c.size); err != nil {
		return err
	}
	if root != comm.Root {
		return fmt.Errorf("tcp: root=%d, only rank %d can be a hub: %w", root, comm.Root, comm.ErrInvalidRoot)
	}

	return nil
}

func (c *Comm) frame(k kind) header {
	return header{Kind: uint32(k), Rank: uint32(c.rank), Size: uint32(c.size)}
}

// coordinator returns the link to rank 0 on a worker.
func (c *Comm) coordinator() *peer { return c.peers[0] }

// Bcast sends root's buf to every worker.
func (c *Comm) Bcast(buf []float64, root int) error {
	if err := c.check(root); err != nil {
		return err
	}
	if c.rank != comm.Root {
		return wrapIO("bcast", c.coordinator().readInto(kindData, buf))
	}
	for r := 1; r < c.size; r++ {
		if err := c.peers[r].write(c.frame(kindData), buf); err != nil {
			return wrapIO("bcast", err)
		}
	}

	return nil
}

// Gatherv collects every rank's segment into recv on rank 0.
func (c *Comm) Gatherv(send, recv []float64, counts, displs []int, root int) error {
	if err := c.check(root); err != nil {
		return err
	}
	if c.rank != comm.Root {
		return wrapIO("gatherv", c.coordinator().write(c.frame(kindData), send))
	}
	if err := comm.CheckGatherv(send, recv, counts, displs, root, c.size); err != nil {
		return err
	}
	copy(recv[displs[root]:displs[root]+counts[root]], send)
	for r := 1; r < c.size; r++ {
		seg := recv[displs[r] : displs[r]+counts[r]]
		if err := c.peers[r].readInto(kindData, seg); err != nil {
			return wrapIO("gatherv", err)
		}
	}

	return nil
}

// Barrier collects a token from every worker on rank 0, then releases them.
func (c *Comm) Barrier() error {
	if err := c.check(comm.Root); err != nil {
		return err
	}
	if c.rank != comm.Root {
		p := c.coordinator()
		if err := p.write(c.frame(kindBarrier), nil); err != nil {
			return wrapIO("barrier", err)
		}
		return wrapIO("barrier", p.readInto(kindBarrier, nil))
	}
	for r := 1; r < c.size; r++ {
		if err := c.peers[r].readInto(kindBarrier, nil); err != nil {
			return wrapIO("barrier", err)
		}
	}
	for r := 1; r < c.size; r++ {
		if err := c.peers[r].write(c.frame(kindBarrier), nil); err != nil {
			return wrapIO("barrier", err)
		}
	}

	return nil
}

// wrapIO tags an error with the collective it broke; a peer hanging up is
// reported as an aborted group.
func wrapIO(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, net.ErrClosed):
		return fmt.Errorf("tcp: %s: %w: %w", op, comm.ErrAborted, err)
	default:
		return fmt.Errorf("tcp: %s: %w", op, err)
	}
}
