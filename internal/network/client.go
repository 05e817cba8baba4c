// Package network talks to the map server: a packet client plus the
// adapters that connect it to the local player.
package network

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/Faultbox/midgard-nav/internal/network/packets"
)

var (
	ErrNotConnected     = errors.New("not connected")
	ErrAlreadyConnected = errors.New("already connected")
	ErrUnknownPacket    = errors.New("unknown packet")
	ErrShortPacket      = errors.New("short packet")
)

// pollTimeout bounds how long Process waits for data each frame.
const pollTimeout = time.Millisecond

// ServerType represents the type of server.
type ServerType int

const (
	ServerLogin ServerType = iota
	ServerChar
	ServerMap
)

// Client handles network communication.
type Client struct {
	conn     net.Conn
	mu       sync.Mutex
	handlers map[uint16]PacketHandler

	// Connection state
	connected  bool
	serverType ServerType

	// Bytes read but not yet forming a whole packet.
	pending []byte
}

// PacketHandler handles incoming packets.
type PacketHandler func(data []byte) error

// New creates a new network client.
func New() *Client {
	return &Client{
		handlers: make(map[uint16]PacketHandler),
	}
}

// Connect connects to a server.
func (c *Client) Connect(host string, port int, serverType ServerType) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return ErrAlreadyConnected
	}

	addr := net.JoinHostPort(host, fmt.Sprint(port))
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}

	c.conn = conn
	c.connected = true
	c.serverType = serverType
	c.pending = nil

	return nil
}

// Disconnect closes the connection.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.connected = false
}

// IsConnected returns connection status.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// ServerType returns the kind of server last connected to.
func (c *Client) ServerType() ServerType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverType
}

// RegisterHandler registers a packet handler.
func (c *Client) RegisterHandler(packetID uint16, handler PacketHandler) {
	c.handlers[packetID] = handler
}

// Send sends a packet to the server.
func (c *Client) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return ErrNotConnected
	}

	if _, err := c.conn.Write(data); err != nil {
		return fmt.Errorf("sending packet %04x: %w", packets.ID(data), err)
	}
	return nil
}

// Dispatch hands one whole packet to its registered handler. Packets
// nobody registered for are dropped.
func (c *Client) Dispatch(data []byte) error {
	id := packets.ID(data)
	h, ok := c.handlers[id]
	if !ok {
		return nil
	}
	if err := h(data); err != nil {
		return fmt.Errorf("handling packet %04x: %w", id, err)
	}
	return nil
}

// Feed appends stream bytes and dispatches every complete packet. An
// unknown packet ID makes the rest of the stream unreadable.
func (c *Client) Feed(data []byte) error {
	c.pending = append(c.pending, data...)
	for len(c.pending) >= 2 {
		id := packets.ID(c.pending)
		n, ok := packets.Length(id)
		if !ok {
			c.pending = nil
			return fmt.Errorf("%w: %04x", ErrUnknownPacket, id)
		}
		if len(c.pending) < n {
			break
		}
		pkt := c.pending[:n]
		c.pending = c.pending[n:]
		if err := c.Dispatch(pkt); err != nil {
			return err
		}
	}
	return nil
}

// Process reads whatever the server sent since the last call and
// dispatches it. Should be called regularly in the game loop.
func (c *Client) Process() error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return nil
	}

	if err := conn.SetReadDeadline(time.Now().Add(pollTimeout)); err != nil {
		return fmt.Errorf("setting read deadline: %w", err)
	}
	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	if n > 0 {
		if ferr := c.Feed(buf[:n]); ferr != nil {
			return ferr
		}
	}
	if err != nil && !errors.Is(err, os.ErrDeadlineExceeded) {
		return fmt.Errorf("reading from server: %w", err)
	}
	return nil
}

func errShort(id uint16, data []byte) error {
	return fmt.Errorf("%w: %04x has %d bytes", ErrShortPacket, id, len(data))
}
