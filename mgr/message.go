// Package mgr implements the Asterisk-style Manager (MGR) protocol: a
// persistent, multiplexed TCP channel carrying Action, Response, and
// Event messages between a client and a PBX.
//
// Usage examples for connecting, sending actions, and subscribing to
// events are in doc.go.
package mgr

import "strings"

// Kind distinguishes the three message shapes the manager protocol
// carries. The bag representation and operations are otherwise
// identical between kinds; only the primary header name differs.
type Kind int

const (
	// KindAction is a client-to-server command.
	KindAction Kind = iota
	// KindResponse is a server-to-client reply to an action, one per
	// action, delivered in FIFO order.
	KindResponse
	// KindEvent is a server-to-client asynchronous notification.
	KindEvent
)

// primaryHeader returns the header name that identifies a message's
// kind: "Action", "Response", or "Event".
func (k Kind) primaryHeader() string {
	switch k {
	case KindAction:
		return "Action"
	case KindResponse:
		return "Response"
	case KindEvent:
		return "Event"
	default:
		return ""
	}
}

// Header is one Name: Value pair. Message keeps headers in an ordered
// slice rather than a map so that duplicate names and insertion order
// both survive a round trip.
type Header struct {
	Name  string
	Value string
}

// Message is an ordered, multi-valued header bag plus, for a Follows
// response, a raw body. Kind distinguishes action/response/event
// messages in place of per-kind duplicated types.
type Message struct {
	kind    Kind
	headers []Header

	// Data holds the raw command output of a Follows-mode response
	// (see readMessage). It is never a header and is empty for
	// Action and Event messages and for non-Follows responses.
	Data string
}

// NewMessage constructs a message of the given kind, setting its
// primary header to value.
func NewMessage(kind Kind, value string) Message {
	m := Message{kind: kind}
	m.Set(kind.primaryHeader(), value)
	return m
}

// NewMessageFromHeaders constructs a message of the given kind from an
// existing ordered header slice, preserving order and duplicates.
func NewMessageFromHeaders(kind Kind, headers []Header) Message {
	m := Message{kind: kind}
	m.headers = append(m.headers, headers...)
	return m
}

// Kind reports this message's kind.
func (m Message) Kind() Kind { return m.kind }

// Get returns the first value stored under name, or "" if absent.
func (m Message) Get(name string) string {
	for _, h := range m.headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

// GetAll returns every value stored under name, in insertion order.
func (m Message) GetAll(name string) []string {
	var vals []string
	for _, h := range m.headers {
		if h.Name == name {
			vals = append(vals, h.Value)
		}
	}
	return vals
}

// Set stores value under name, overwriting the first existing entry
// for name if one exists, or appending a new one otherwise: a
// get-or-create insertion.
func (m *Message) Set(name, value string) {
	for i := range m.headers {
		if m.headers[i].Name == name {
			m.headers[i].Value = value
			return
		}
	}
	m.headers = append(m.headers, Header{Name: name, Value: value})
}

// Add always appends a new (name, value) pair, preserving any existing
// entries for name. Use this for headers the wire protocol repeats,
// such as Originate's Variable headers.
func (m *Message) Add(name, value string) {
	m.headers = append(m.headers, Header{Name: name, Value: value})
}

// Headers returns every header in insertion order.
func (m Message) Headers() []Header {
	out := make([]Header, len(m.headers))
	copy(out, m.headers)
	return out
}

// Is compares this message's primary header value to s, the idiomatic
// way to test response status (response.Is("Success")).
func (m Message) Is(s string) bool {
	v, err := m.Primary()
	if err != nil {
		return false
	}
	return v == s
}

// Primary returns the value of the primary header for this message's
// kind, failing with HeaderMissing if it was never set.
func (m Message) Primary() (string, error) {
	name := m.kind.primaryHeader()
	for _, h := range m.headers {
		if h.Name == name {
			return h.Value, nil
		}
	}
	return "", &HeaderMissing{Name: name}
}

// String serializes the message to its wire form: the primary header
// first (even if it was inserted out of order), each remaining header
// as "Name: Value\r\n", and a terminating blank line.
//
// String silently returns "" if the primary header was never set;
// callers that need to detect that should use Format instead.
func (m Message) String() string {
	s, err := m.Format()
	if err != nil {
		return ""
	}
	return s
}

// Format serializes the message per String, returning HeaderMissing if
// the primary header has no value.
func (m Message) Format() (string, error) {
	primary, err := m.Primary()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	name := m.kind.primaryHeader()
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(primary)
	b.WriteString("\r\n")

	for _, h := range m.headers {
		if h.Name == name {
			continue
		}
		b.WriteString(h.Name)
		b.WriteString(": ")
		b.WriteString(h.Value)
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")
	return b.String(), nil
}
