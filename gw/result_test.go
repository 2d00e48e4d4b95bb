package gw

import (
	"bufio"
	"strings"
	"testing"
)

func TestParseResult200Simple(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("200 result=1\n"))
	res, err := parseResult(r)
	if err != nil {
		t.Fatalf("parseResult returned error: %v", err)
	}
	if res.Code != 200 || res.Result != 1 || res.ResultString != "1" {
		t.Fatalf("got %+v", res)
	}
}

func TestParseResult200NoValue(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("200 result= (foo)\n"))
	res, err := parseResult(r)
	if err != nil {
		t.Fatalf("parseResult returned error: %v", err)
	}
	if res.Result != 0 || res.ResultString != "" {
		t.Fatalf("got %+v", res)
	}
	if res.Data != "foo" {
		t.Fatalf("Data = %q, want foo", res.Data)
	}
}

func TestParseResult200WithDataAndEndpos(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("200 result=1 (hangup) endpos=4000\n"))
	res, err := parseResult(r)
	if err != nil {
		t.Fatalf("parseResult returned error: %v", err)
	}
	if res.Data != "hangup" {
		t.Fatalf("Data = %q, want hangup", res.Data)
	}
	if res.Endpos != 4000 {
		t.Fatalf("Endpos = %d, want 4000", res.Endpos)
	}
}

func TestParseResult200EndposWithoutParens(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("200 result=1 endpos=1234\n"))
	res, err := parseResult(r)
	if err != nil {
		t.Fatalf("parseResult returned error: %v", err)
	}
	if res.Endpos != 1234 {
		t.Fatalf("Endpos = %d, want 1234", res.Endpos)
	}
}

func TestParseResult510(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("510 Invalid or unknown command\n"))
	_, err := parseResult(r)
	if _, ok := err.(*InvalidCommand); !ok {
		t.Fatalf("err = %T, want *InvalidCommand", err)
	}
}

func TestParseResult520(t *testing.T) {
	raw := "520-Invalid command syntax.  Proper usage not known.\n" +
		"Usage: ANSWER\n" +
		"520 End of proper usage.\n"
	r := bufio.NewReader(strings.NewReader(raw))
	_, err := parseResult(r)
	usageErr, ok := err.(*UsageError)
	if !ok {
		t.Fatalf("err = %T, want *UsageError", err)
	}
	if !strings.Contains(usageErr.Message, "Usage: ANSWER") {
		t.Fatalf("usage message missing captured line: %q", usageErr.Message)
	}
}

func TestParseResultUnknownCode(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("301 Moved\n"))
	_, err := parseResult(r)
	unk, ok := err.(*UnknownError)
	if !ok {
		t.Fatalf("err = %T, want *UnknownError", err)
	}
	if unk.Code != 301 {
		t.Fatalf("Code = %d, want 301", unk.Code)
	}
}
