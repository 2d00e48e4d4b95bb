package gw

import (
	"bufio"
	"strconv"
	"strings"
)

// Result is a parsed reply to a sent command.
type Result struct {
	Code         int
	Message      string
	Result       int
	ResultString string
	Data         string
	Endpos       int64
}

// parseResult reads one reply from r: a leading integer code, one
// optional space, then a message whose shape depends on the code.
func parseResult(r *bufio.Reader) (Result, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return Result{}, err
	}
	line = strings.TrimRight(line, "\r\n")

	code, message := splitCode(line)
	res := Result{Code: code, Message: message}

	switch code {
	case 200:
		parse200(&res)
		return res, nil
	case 510:
		return res, &InvalidCommand{Message: message}
	case 520:
		return parse520(r, &res)
	default:
		return res, &UnknownError{Code: code, Message: message}
	}
}

// splitCode splits line into its leading integer and the remainder,
// with at most one separating space consumed.
func splitCode(line string) (int, string) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	code, _ := strconv.Atoi(line[:i])
	rest := line[i:]
	if strings.HasPrefix(rest, " ") {
		rest = rest[1:]
	}
	return code, rest
}

// parse200 extracts result/result_string/data/endpos from a 200
// reply's message.
func parse200(res *Result) {
	msg := res.Message

	eq := strings.Index(msg, "=")
	if eq < 0 {
		return
	}
	rest := msg[eq+1:]

	if strings.HasPrefix(rest, " ") {
		res.ResultString = ""
		res.Result = 0
	} else {
		end := strings.IndexAny(rest, " \t")
		token := rest
		if end >= 0 {
			token = rest[:end]
		}
		res.ResultString = token
		if n, err := strconv.Atoi(token); err == nil {
			res.Result = n
		} else {
			res.Result = 0
		}
	}

	if open := strings.Index(msg, "("); open >= 0 {
		inner := msg[open+1:]
		if shut := strings.LastIndex(inner, ")"); shut >= 0 {
			res.Data = inner[:shut]
			scanEndpos(inner[shut+1:], res)
			return
		}
	}
	scanEndpos(msg, res)
}

// scanEndpos finds "endpos=<n>" in s and stores n in res.Endpos.
func scanEndpos(s string, res *Result) {
	const key = "endpos="
	idx := strings.Index(s, key)
	if idx < 0 {
		return
	}
	rest := s[idx+len(key):]
	end := 0
	for end < len(rest) && (rest[end] == '-' || (rest[end] >= '0' && rest[end] <= '9')) {
		end++
	}
	if n, err := strconv.ParseInt(rest[:end], 10, 64); err == nil {
		res.Endpos = n
	}
}

// parse520 accumulates usage lines until one whose leading integer is
// 520, then raises UsageError with the accumulated text.
func parse520(r *bufio.Reader, res *Result) (Result, error) {
	var b strings.Builder
	b.WriteString(res.Message)

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return *res, err
		}
		trimmed := strings.TrimRight(line, "\r\n")
		code, _ := splitCode(trimmed)
		if code == 520 {
			break
		}
		b.WriteString("\n")
		b.WriteString(trimmed)
	}

	res.Message = b.String()
	return *res, &UsageError{Message: res.Message}
}
