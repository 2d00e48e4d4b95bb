package gw

import (
	"bytes"
	"testing"
)

func newTestEngine(t *testing.T, env string, replies string) (*Engine, *bytes.Buffer) {
	t.Helper()
	in := bytes.NewBufferString(env + replies)
	out := &bytes.Buffer{}

	e, err := NewEngine(in, out)
	if err != nil {
		t.Fatalf("NewEngine returned error: %v", err)
	}
	t.Cleanup(e.Close)
	return e, out
}

func TestNewEngineReadsEnv(t *testing.T) {
	e, _ := newTestEngine(t, "agi_channel: SIP/100\nagi_uniqueid: 12345\n\n", "")
	if got := e.Get("agi_channel"); got != "SIP/100" {
		t.Fatalf("Get(agi_channel) = %q, want SIP/100", got)
	}
	if got := e.Get("agi_uniqueid"); got != "12345" {
		t.Fatalf("Get(agi_uniqueid) = %q, want 12345", got)
	}
	if got := e.Get("missing"); got != "" {
		t.Fatalf("Get(missing) = %q, want empty", got)
	}
}

func TestEnvRangeYieldsInsertionOrder(t *testing.T) {
	e, _ := newTestEngine(t, "agi_channel: SIP/100\nagi_uniqueid: 12345\nagi_callerid: 5551234\n\n", "")

	var keys []string
	e.Env.Range(func(key, value string) bool {
		keys = append(keys, key)
		return true
	})
	want := []string{"agi_channel", "agi_uniqueid", "agi_callerid"}
	if len(keys) != len(want) {
		t.Fatalf("Range yielded %d pairs, want %d", len(keys), len(want))
	}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("keys[%d] = %q, want %q", i, keys[i], k)
		}
	}
}

func TestEnvRangeStopsEarly(t *testing.T) {
	e, _ := newTestEngine(t, "a: 1\nb: 2\nc: 3\n\n", "")

	var seen int
	e.Env.Range(func(key, value string) bool {
		seen++
		return key != "b"
	})
	if seen != 2 {
		t.Fatalf("Range visited %d pairs before stopping, want 2", seen)
	}
}

func TestExecuteWritesCommandAndParsesReply(t *testing.T) {
	e, out := newTestEngine(t, "\n", "200 result=1\n")

	res, err := e.Execute("ANSWER")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if res.Result != 1 {
		t.Fatalf("Result = %d, want 1", res.Result)
	}
	if got := out.String(); got != "ANSWER\n" {
		t.Fatalf("wrote %q, want %q", got, "ANSWER\n")
	}
}

func TestExecuteApplicationError(t *testing.T) {
	e, _ := newTestEngine(t, "\n", "200 result=-1\n")

	_, err := e.Execute("HANGUP")
	if _, ok := err.(*ApplicationError); !ok {
		t.Fatalf("err = %T, want *ApplicationError", err)
	}
}

func TestExecuteHangupByResult(t *testing.T) {
	e, _ := newTestEngine(t, "\n", "200 result=1 (hangup)\n")

	_, err := e.Execute("GET VARIABLE \"X\"")
	if _, ok := err.(*HangupByResult); !ok {
		t.Fatalf("err = %T, want *HangupByResult", err)
	}
}

func TestExecuteHangupBySignal(t *testing.T) {
	e, _ := newTestEngine(t, "\n", "200 result=1\n")
	e.sig.gotHangup.Store(true)

	_, err := e.Execute("NOOP")
	if _, ok := err.(*HangupBySignal); !ok {
		t.Fatalf("err = %T, want *HangupBySignal", err)
	}
}

func TestClearResetsFlags(t *testing.T) {
	e, _ := newTestEngine(t, "\n", "")
	e.sig.gotHangup.Store(true)
	e.sig.gotPipe.Store(true)

	e.Clear()

	if err := e.TestHangup(); err != nil {
		t.Fatalf("TestHangup() after Clear = %v, want nil", err)
	}
}
