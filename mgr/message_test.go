package mgr

import "testing"

func TestMessageSetOverwritesFirstMatch(t *testing.T) {
	m := NewMessage(KindAction, "Ping")
	m.Set("Channel", "SIP/100")
	m.Set("Channel", "SIP/200")

	if got := m.Get("Channel"); got != "SIP/200" {
		t.Fatalf("Get(Channel) = %q, want SIP/200", got)
	}
	if got := len(m.GetAll("Channel")); got != 1 {
		t.Fatalf("GetAll(Channel) returned %d entries, want 1", got)
	}
}

func TestMessageAddPreservesDuplicates(t *testing.T) {
	m := NewMessage(KindAction, "Originate")
	m.Add("Variable", "a=1")
	m.Add("Variable", "b=2")

	got := m.GetAll("Variable")
	want := []string{"a=1", "b=2"}
	if len(got) != len(want) {
		t.Fatalf("GetAll(Variable) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("GetAll(Variable)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMessageIs(t *testing.T) {
	m := NewMessage(KindResponse, "Success")
	if !m.Is("Success") {
		t.Fatal("Is(Success) = false, want true")
	}
	if m.Is("Error") {
		t.Fatal("Is(Error) = true, want false")
	}
}

func TestMessagePrimaryMissing(t *testing.T) {
	m := Message{kind: KindResponse}
	if _, err := m.Primary(); err == nil {
		t.Fatal("Primary() on a message with no primary header should fail")
	}
}

func TestMessageFormatPrimaryFirst(t *testing.T) {
	m := NewMessageFromHeaders(KindAction, []Header{
		{Name: "Channel", Value: "SIP/100"},
		{Name: "Action", Value: "Hangup"},
	})

	s, err := m.Format()
	if err != nil {
		t.Fatalf("Format() returned error: %v", err)
	}
	want := "Action: Hangup\r\nChannel: SIP/100\r\n\r\n"
	if s != want {
		t.Fatalf("Format() = %q, want %q", s, want)
	}
}

func TestMessageFormatMissingPrimary(t *testing.T) {
	m := Message{kind: KindAction}
	if _, err := m.Format(); err == nil {
		t.Fatal("Format() should fail when the primary header was never set")
	}
}
