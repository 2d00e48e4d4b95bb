package mgr

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"
)

// DefaultPort is the manager protocol's conventional TCP port.
const DefaultPort = 5038

// responseHandler is the completion callback queued for one in-flight
// action. Response handlers are invoked with the response Message
// already popped from the response queue.
type responseHandler func(Message)

// eventHandler is a registered event subscriber callback.
type eventHandler func(Message)

// subscriberSlot is one entry in the event subscriber registry: a
// generational id paired with its callback, so that releasing a
// Subscription removes exactly that slot and no other subscriber
// registered under the same event name.
type subscriberSlot struct {
	id int
	f  eventHandler
}

// Subscription is an opaque handle returned by Connection.RegisterEvent.
// Release detaches exactly the callback it was returned for.
type Subscription struct {
	c    *Connection
	name string
	id   int
}

// Release detaches this subscription's callback. Releasing a zero
// value or an already-released Subscription is a no-op.
func (s Subscription) Release() {
	if s.c == nil {
		return
	}
	s.c.unregisterEvent(s.name, s.id)
}

// Connection owns a single TCP socket to the manager and implements
// the full send/receive/dispatch contract: action framing,
// response/event demultiplexing, FIFO response correlation, and named
// event fan-out.
//
// A Connection is single-writer by contract: at most one goroutine may
// call its sending/waiting/dispatch methods at a time.
type Connection struct {
	conn net.Conn
	r    *bufio.Reader

	name    string
	version string

	Logger *slog.Logger

	mu        sync.Mutex
	events    []Message
	responses []Message
	handlers  []responseHandler

	subMu       sync.Mutex
	subscribers map[string][]subscriberSlot
	nextSubID   int
}

// Connect dials host:port (port defaults to DefaultPort when zero),
// reads the manager's one-line greeting, and returns a ready
// Connection. The greeting's "<name>/<version>" is split at its last
// '/'.
func Connect(host string, port int) (*Connection, error) {
	if port == 0 {
		port = DefaultPort
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, wrapIO(err)
	}

	c := &Connection{
		conn:        conn,
		r:           bufio.NewReader(conn),
		subscribers: make(map[string][]subscriberSlot),
	}

	name, version, err := readGreeting(c.r)
	if err != nil {
		conn.Close()
		return nil, wrapIO(err)
	}
	c.name = name
	c.version = version

	return c, nil
}

// NewConnection wraps an already-established net.Conn, reading its
// greeting the same way Connect does. This is the seam integration
// tests dial through (e.g. a net.Pipe or an in-process mock listener).
func NewConnection(conn net.Conn) (*Connection, error) {
	c := &Connection{
		conn:        conn,
		r:           bufio.NewReader(conn),
		subscribers: make(map[string][]subscriberSlot),
	}

	name, version, err := readGreeting(c.r)
	if err != nil {
		conn.Close()
		return nil, wrapIO(err)
	}
	c.name = name
	c.version = version
	return c, nil
}

// Name returns the manager-reported server name from the greeting.
func (c *Connection) Name() string { return c.name }

// Version returns the manager-reported server version from the
// greeting.
func (c *Connection) Version() string { return c.version }

// IsConnected reports whether the underlying socket is still thought
// to be open. It does not perform I/O.
func (c *Connection) IsConnected() bool { return c.conn != nil }

// Disconnect shuts the socket down both ways and releases it. Queues
// and the subscriber registry are left intact but will never receive
// further data.
func (c *Connection) Disconnect() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return wrapIO(err)
}

func (c *Connection) logDebug(m Message) {
	if c.Logger == nil {
		return
	}
	kind := "event"
	switch m.Kind() {
	case KindResponse:
		kind = "response"
	case KindAction:
		kind = "action"
	}
	c.Logger.Debug("mgr message", "kind", kind, "headers", m.Headers(), "data", m.Data)
}

// send serializes and writes an Action message in one contiguous
// buffer. No read is performed on the send path.
func (c *Connection) send(m Message) error {
	s, err := m.Format()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(c.conn, s)
	return wrapIO(err)
}

// SendActionAsync builds the action's message (sent as built; no
// ActionID is added), writes it, and pushes handler onto the
// response-handler queue. It does not block on a read. handler may be
// nil if the caller does not care about the response (fire-and-forget
// actions like Logoff).
func (c *Connection) SendActionAsync(a Action, handler func(Message)) error {
	// ActionID, when present, is whatever the action's own
	// BuildMessage set; correlation itself is FIFO over the single
	// socket, not ActionID-keyed — the field is only passed through
	// transparently for the peer to echo.
	m := a.BuildMessage()

	if err := c.send(m); err != nil {
		return err
	}

	c.mu.Lock()
	if handler != nil {
		c.handlers = append(c.handlers, handler)
	} else {
		c.handlers = append(c.handlers, func(Message) {})
	}
	c.mu.Unlock()

	return nil
}

// SendAction sends the action and blocks until its response has been
// dispatched, returning the response. It installs a waiter handler,
// starts the async send, then alternates waiting for at least one
// message and draining the response-handler queue until the waiter
// has fired.
func (c *Connection) SendAction(a Action) (Message, error) {
	var (
		resp    Message
		fired   bool
		waitErr error
	)

	waiter := func(m Message) {
		resp = m
		fired = true
	}

	if err := c.SendActionAsync(a, waiter); err != nil {
		return Message{}, err
	}

	for !fired {
		if err := c.WaitResponse(); err != nil {
			waitErr = err
			break
		}
		if err := c.PumpMessages(); err != nil {
			waitErr = err
			break
		}
		c.ProcessResponses()
	}

	if waitErr != nil && !fired {
		return Message{}, waitErr
	}
	return resp, nil
}

// ProcessResponses pops one handler and one response together for as
// long as both queues are non-empty, invoking each handler inline.
// Handlers may enqueue further actions or responses; the loop
// re-checks after each iteration to accommodate that.
func (c *Connection) ProcessResponses() {
	for {
		c.mu.Lock()
		if len(c.handlers) == 0 || len(c.responses) == 0 {
			c.mu.Unlock()
			return
		}
		h := c.handlers[0]
		c.handlers = c.handlers[1:]
		r := c.responses[0]
		c.responses = c.responses[1:]
		c.mu.Unlock()

		h(r)
	}
}

// ProcessEvents pops one event at a time and invokes every callback
// registered for its exact name, then every callback registered for
// the "" catch-all. Popping before invoking avoids iterator
// invalidation if a callback enqueues further events.
func (c *Connection) ProcessEvents() {
	for {
		c.mu.Lock()
		if len(c.events) == 0 {
			c.mu.Unlock()
			return
		}
		e := c.events[0]
		c.events = c.events[1:]
		c.mu.Unlock()

		name, _ := e.Primary()
		c.dispatchEvent(name, e)
		if name != "" {
			c.dispatchEvent("", e)
		}
	}
}

func (c *Connection) dispatchEvent(name string, e Message) {
	c.subMu.Lock()
	slots := append([]subscriberSlot(nil), c.subscribers[name]...)
	c.subMu.Unlock()

	for _, s := range slots {
		s.f(e)
	}
}

// PumpMessages reads and routes whole messages for as long as the
// socket reports readable data, without blocking when none is
// available. Buffered bytes decrease monotonically to zero and it
// returns.
func (c *Connection) PumpMessages() error {
	for {
		ready, err := c.readable()
		if err != nil {
			return err
		}
		if !ready {
			return nil
		}
		if err := c.readOne(); err != nil {
			return err
		}
	}
}

// readable reports whether a message byte is available without
// blocking: either it's already buffered, or a zero-timeout
// SetReadDeadline peek finds one waiting on the socket. This is the Go
// equivalent of boost::asio::socket::available() used by
// connection.cc:pump_messages, since Go's net.Conn has no direct
// "bytes ready" query.
func (c *Connection) readable() (bool, error) {
	if c.r.Buffered() > 0 {
		return true, nil
	}

	deadlined, ok := c.conn.(interface{ SetReadDeadline(time.Time) error })
	if !ok {
		return false, nil
	}

	_ = deadlined.SetReadDeadline(time.Now())
	defer deadlined.SetReadDeadline(time.Time{})

	_, err := c.r.Peek(1)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return false, nil
		}
		return false, wrapIO(err)
	}
	return true, nil
}

// WaitEvent blocks reading whole messages until the event queue is
// non-empty. If a response arrives while waiting, it is queued for
// later rather than discarded.
func (c *Connection) WaitEvent() error {
	for {
		c.mu.Lock()
		empty := len(c.events) == 0
		c.mu.Unlock()
		if !empty {
			return nil
		}
		if err := c.readOne(); err != nil {
			return err
		}
	}
}

// WaitResponse blocks reading whole messages until the response queue
// is non-empty. If an event arrives while waiting, it is queued for
// later rather than discarded.
func (c *Connection) WaitResponse() error {
	for {
		c.mu.Lock()
		empty := len(c.responses) == 0
		c.mu.Unlock()
		if !empty {
			return nil
		}
		if err := c.readOne(); err != nil {
			return err
		}
	}
}

// readOne reads one complete message and routes it to the event queue
// or the response queue according to its kind.
func (c *Connection) readOne() error {
	m, err := readMessage(c.r)
	if err != nil {
		return wrapIO(err)
	}

	c.logDebug(m)

	c.mu.Lock()
	switch m.Kind() {
	case KindEvent:
		c.events = append(c.events, m)
	case KindResponse:
		c.responses = append(c.responses, m)
	}
	c.mu.Unlock()
	return nil
}

// RegisterEvent registers f to be invoked for every event named name,
// or for every event at all when name is "" (the catch-all). Multiple
// handlers for the same name fire in registration order; per-name
// handlers fire before the catch-all.
func (c *Connection) RegisterEvent(name string, f func(Message)) Subscription {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	c.nextSubID++
	id := c.nextSubID
	c.subscribers[name] = append(c.subscribers[name], subscriberSlot{id: id, f: f})

	return Subscription{c: c, name: name, id: id}
}

func (c *Connection) unregisterEvent(name string, id int) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	slots := c.subscribers[name]
	for i, s := range slots {
		if s.id == id {
			c.subscribers[name] = append(slots[:i], slots[i+1:]...)
			return
		}
	}
}
