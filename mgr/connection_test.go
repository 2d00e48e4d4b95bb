package mgr

import (
	"bufio"
	"net"
	"testing"

	check "gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type ConnectionSuite struct{}

var _ = check.Suite(&ConnectionSuite{})

// mockManager is a minimal in-process manager peer: it sends a
// greeting, then replies Success to every action it is sent.
// Grounded on gami_test.go's amock/handleConnection pattern.
type mockManager struct {
	ln net.Listener
}

func startMockManager(c *check.C) (*mockManager, string) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		c.Fatalf("listen: %v", err)
	}
	mm := &mockManager{ln: ln}
	go mm.serve()
	return mm, ln.Addr().String()
}

func (m *mockManager) serve() {
	for {
		conn, err := m.ln.Accept()
		if err != nil {
			return
		}
		go m.handle(conn)
	}
}

func (m *mockManager) stop() { m.ln.Close() }

func (m *mockManager) handle(conn net.Conn) {
	defer conn.Close()
	conn.Write([]byte("Asterisk Call Manager/8.0.0\r\n"))

	r := bufio.NewReader(conn)
	var lines []string
	for {
		line, err := readLine(r)
		if err != nil {
			return
		}
		if line == "" {
			actionID := ""
			action := ""
			for _, l := range lines {
				n, v, perr := parseHeader(l)
				if perr != nil {
					continue
				}
				if n == "ActionID" {
					actionID = v
				}
				if n == "Action" {
					action = v
				}
			}
			lines = nil

			resp := "Response: Success\r\n"
			if actionID != "" {
				resp += "ActionID: " + actionID + "\r\n"
			}
			resp += "\r\n"
			conn.Write([]byte(resp))

			if action == "UserEvent" {
				conn.Write([]byte("Event: UserEvent\r\nUserEvent: TestEvent\r\n\r\n"))
			}
			continue
		}
		lines = append(lines, line)
	}
}

func (s *ConnectionSuite) TestLoginAndPing(c *check.C) {
	mm, addr := startMockManager(c)
	defer mm.stop()

	host, portStr, err := net.SplitHostPort(addr)
	c.Assert(err, check.IsNil)
	port := 0
	for _, ch := range portStr {
		port = port*10 + int(ch-'0')
	}

	conn, err := Connect(host, port)
	c.Assert(err, check.IsNil)
	c.Assert(conn.Name(), check.Equals, "Asterisk Call Manager")
	c.Assert(conn.Version(), check.Equals, "8.0.0")

	resp, err := Apply(NewLogin("admin", "admin"), conn)
	c.Assert(err, check.IsNil)
	c.Assert(resp.Is("Success"), check.Equals, true)

	resp, err = Apply(NewPing(), conn)
	c.Assert(err, check.IsNil)
	c.Assert(resp.Is("Success"), check.Equals, true)
}

func (s *ConnectionSuite) TestEventFanOut(c *check.C) {
	mm, addr := startMockManager(c)
	defer mm.stop()

	host, portStr, _ := net.SplitHostPort(addr)
	port := 0
	for _, ch := range portStr {
		port = port*10 + int(ch-'0')
	}

	conn, err := Connect(host, port)
	c.Assert(err, check.IsNil)

	received := make(chan Message, 1)
	sub := conn.RegisterEvent("UserEvent", func(e Message) {
		received <- e
	})
	defer sub.Release()

	_, err = Apply(NewUserEvent("TestEvent"), conn)
	c.Assert(err, check.IsNil)

	c.Assert(conn.WaitEvent(), check.IsNil)
	conn.ProcessEvents()

	select {
	case e := <-received:
		c.Assert(e.Get("UserEvent"), check.Equals, "TestEvent")
	default:
		c.Fatal("event handler was never invoked")
	}
}

func (s *ConnectionSuite) TestReadableWithoutData(c *check.C) {
	client, server := net.Pipe()
	defer server.Close()

	go func() {
		server.Write([]byte("Mock/1.0\r\n"))
	}()

	conn, err := NewConnection(client)
	c.Assert(err, check.IsNil)

	ready, err := conn.readable()
	c.Assert(err, check.IsNil)
	c.Assert(ready, check.Equals, false)
}

func (s *ConnectionSuite) TestSubscriptionRelease(c *check.C) {
	mm, addr := startMockManager(c)
	defer mm.stop()

	host, portStr, _ := net.SplitHostPort(addr)
	port := 0
	for _, ch := range portStr {
		port = port*10 + int(ch-'0')
	}
	conn, err := Connect(host, port)
	c.Assert(err, check.IsNil)

	var calls int
	sub := conn.RegisterEvent("UserEvent", func(Message) { calls++ })
	sub.Release()

	_, err = Apply(NewUserEvent("TestEvent"), conn)
	c.Assert(err, check.IsNil)
	c.Assert(conn.WaitEvent(), check.IsNil)
	conn.ProcessEvents()

	c.Assert(calls, check.Equals, 0)
}
