package mgr

import (
	"bufio"
	"strings"
	"testing"
)

func TestReadLineStripsCRLF(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("Response: Success\r\nrest"))
	line, err := readLine(r)
	if err != nil {
		t.Fatalf("readLine returned error: %v", err)
	}
	if line != "Response: Success" {
		t.Fatalf("readLine = %q, want %q", line, "Response: Success")
	}
}

func TestReadLineBlank(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("\r\n"))
	line, err := readLine(r)
	if err != nil {
		t.Fatalf("readLine returned error: %v", err)
	}
	if line != "" {
		t.Fatalf("readLine = %q, want empty string", line)
	}
}

func TestParseHeader(t *testing.T) {
	cases := []struct {
		line      string
		name, val string
	}{
		{"Response: Success", "Response", "Success"},
		{"Response:Success", "Response", "Success"},
		{"ActionID: 1234", "ActionID", "1234"},
	}
	for _, c := range cases {
		name, val, err := parseHeader(c.line)
		if err != nil {
			t.Fatalf("parseHeader(%q) returned error: %v", c.line, err)
		}
		if name != c.name || val != c.val {
			t.Fatalf("parseHeader(%q) = (%q, %q), want (%q, %q)", c.line, name, val, c.name, c.val)
		}
	}
}

func TestParseHeaderNoColon(t *testing.T) {
	if _, _, err := parseHeader("garbage"); err == nil {
		t.Fatal("parseHeader(garbage) should fail without a colon")
	}
}

func TestParseHeaderEmpty(t *testing.T) {
	if _, _, err := parseHeader(""); err != ErrEmptyHeader {
		t.Fatalf("parseHeader(\"\") = %v, want ErrEmptyHeader", err)
	}
}

func TestReadGreeting(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("Asterisk Call Manager/8.0.0\r\n"))
	name, version, err := readGreeting(r)
	if err != nil {
		t.Fatalf("readGreeting returned error: %v", err)
	}
	if name != "Asterisk Call Manager" || version != "8.0.0" {
		t.Fatalf("readGreeting = (%q, %q), want (%q, %q)", name, version, "Asterisk Call Manager", "8.0.0")
	}
}

func TestReadMessageEvent(t *testing.T) {
	raw := "Event: Hangup\r\nChannel: SIP/100\r\nCause: 16\r\n\r\n"
	r := bufio.NewReader(strings.NewReader(raw))

	m, err := readMessage(r)
	if err != nil {
		t.Fatalf("readMessage returned error: %v", err)
	}
	if m.Kind() != KindEvent {
		t.Fatalf("Kind() = %v, want KindEvent", m.Kind())
	}
	if v, _ := m.Primary(); v != "Hangup" {
		t.Fatalf("Primary() = %q, want Hangup", v)
	}
	if m.Get("Channel") != "SIP/100" {
		t.Fatalf("Get(Channel) = %q, want SIP/100", m.Get("Channel"))
	}
}

func TestReadMessageResponse(t *testing.T) {
	raw := "Response: Success\r\nActionID: 42\r\nMessage: Authentication accepted\r\n\r\n"
	r := bufio.NewReader(strings.NewReader(raw))

	m, err := readMessage(r)
	if err != nil {
		t.Fatalf("readMessage returned error: %v", err)
	}
	if m.Kind() != KindResponse {
		t.Fatalf("Kind() = %v, want KindResponse", m.Kind())
	}
	if m.Get("ActionID") != "42" {
		t.Fatalf("Get(ActionID) = %q, want 42", m.Get("ActionID"))
	}
}

func TestReadMessageFollows(t *testing.T) {
	raw := "Response: Follows\r\n" +
		"Privilege: Command\r\n" +
		"ActionID: 7\r\n" +
		"Core show channels count line one\r\n" +
		"Core show channels count line two\r\n" +
		"--END COMMAND--\r\n" +
		"\r\n"
	r := bufio.NewReader(strings.NewReader(raw))

	m, err := readMessage(r)
	if err != nil {
		t.Fatalf("readMessage returned error: %v", err)
	}
	if m.Get("ActionID") != "7" {
		t.Fatalf("Get(ActionID) = %q, want 7", m.Get("ActionID"))
	}
	want := "Core show channels count line one\r\nCore show channels count line two"
	if m.Data != want {
		t.Fatalf("Data = %q, want %q", m.Data, want)
	}
}

func TestReadMessageUnknown(t *testing.T) {
	raw := "Garbage: yes\r\n\r\n"
	r := bufio.NewReader(strings.NewReader(raw))

	if _, err := readMessage(r); err == nil {
		t.Fatal("readMessage should fail on an unrecognized primary header")
	} else if _, ok := err.(*UnknownMessage); !ok {
		t.Fatalf("readMessage error = %T, want *UnknownMessage", err)
	}
}
