package mgr

import (
	"bufio"
	"strings"
)

// commandTerminator is the sentinel that ends the raw body of a
// Follows-mode response.
const commandTerminator = "--END COMMAND--"

// readLine reads one byte at a time until the two-byte sequence CRLF
// is observed, and returns the line with the CRLF stripped. A result
// of "" signals the blank-line message terminator.
//
// Reads byte-by-byte rather than using a buffered line scanner because
// the greeting and every subsequent header line are CRLF-terminated,
// not bare-LF-terminated — a bufio.Scanner split on '\n' would leave a
// trailing '\r' on every header value.
func readLine(r *bufio.Reader) (string, error) {
	var line []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		line = append(line, b)
		n := len(line)
		if n >= 2 && line[n-2] == '\r' && line[n-1] == '\n' {
			return string(line[:n-2]), nil
		}
	}
}

// parseHeader splits a non-empty header line at its first colon. The
// name is the text before the colon; the value is the text after it,
// with at most one leading space consumed.
func parseHeader(line string) (name, value string, err error) {
	if line == "" {
		return "", "", ErrEmptyHeader
	}

	i := -1
	for idx := 0; idx < len(line); idx++ {
		if line[idx] == ':' {
			i = idx
			break
		}
	}
	if i < 0 {
		return "", "", &ParseError{Line: line}
	}

	name = line[:i]
	rest := line[i+1:]
	if len(rest) > 0 && rest[0] == ' ' {
		rest = rest[1:]
	}
	value = rest
	return name, value, nil
}

// readGreeting reads the single CRLF-terminated line the peer sends
// immediately upon connect, of the form "<name>/<version>", and
// splits it at the last '/'.
func readGreeting(r *bufio.Reader) (name, version string, err error) {
	line, err := readLine(r)
	if err != nil {
		return "", "", err
	}

	idx := -1
	for i := len(line) - 1; i >= 0; i-- {
		if line[i] == '/' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return line, "", nil
	}
	return line[:idx], line[idx+1:], nil
}

// readMessage reads one complete message from r: an event, if the
// first header's name is "Event"; a response, if it is "Response"
// (with Follows-mode raw-body handling); or UnknownMessage for
// anything else.
func readMessage(r *bufio.Reader) (Message, error) {
	first, err := readLine(r)
	if err != nil {
		return Message{}, err
	}

	name, value, err := parseHeader(first)
	if err != nil {
		return Message{}, err
	}

	switch name {
	case "Event":
		return readEventBody(r, value)
	case "Response":
		return readResponseBody(r, value)
	default:
		return Message{}, &UnknownMessage{Kind: name}
	}
}

func readEventBody(r *bufio.Reader, value string) (Message, error) {
	m := NewMessage(KindEvent, value)
	for {
		line, err := readLine(r)
		if err != nil {
			return Message{}, err
		}
		if line == "" {
			break
		}
		n, v, err := parseHeader(line)
		if err != nil {
			return Message{}, err
		}
		m.Add(n, v)
	}
	return m, nil
}

// readResponseBody reads a response's remaining header lines, and, for
// a Follows-mode response, its raw command output. Headers (Privilege,
// ActionID) always precede the body on the wire and always contain a
// colon; the first line without one is taken to start the raw body,
// which continues until a line containing commandTerminator anywhere
// in it, with any text before the sentinel on that line kept as the
// last line of body rather than the whole line being dropped.
func readResponseBody(r *bufio.Reader, value string) (Message, error) {
	m := NewMessage(KindResponse, value)
	follows := value == "Follows"
	inBody := false
	var bodyLines []string

	for {
		line, err := readLine(r)
		if err != nil {
			return Message{}, err
		}
		if line == "" {
			break
		}

		if follows && inBody {
			if idx := strings.Index(line, commandTerminator); idx >= 0 {
				if idx > 0 {
					bodyLines = append(bodyLines, line[:idx])
				}
				inBody = false
				m.Data = strings.Join(bodyLines, "\r\n")
				continue
			}
			bodyLines = append(bodyLines, line)
			continue
		}

		n, v, err := parseHeader(line)
		if err != nil {
			if follows {
				inBody = true
				bodyLines = append(bodyLines, line)
				continue
			}
			return Message{}, err
		}
		m.Add(n, v)
	}
	return m, nil
}

