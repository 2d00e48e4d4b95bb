package mgr

import "strconv"

// EventMask flag values, OR'd together to build an Events action's
// numeric mask.
const (
	EventMaskSystem  = 1
	EventMaskCall    = 2
	EventMaskLog     = 4
	EventMaskVerbose = 8
	EventMaskCommand = 16
	EventMaskAgent   = 32
	EventMaskUser    = 64
	EventMaskConfig  = 128
)

// AbsoluteTimeout sets or cancels the absolute timeout on a channel.
// Timeout is in seconds; 0 (or SpecialTimeout) cancels it and is
// serialized as "0".
type AbsoluteTimeout struct {
	BaseAction
	Channel string
	Timeout int
}

// SpecialTimeout is the sentinel meaning "no timeout"/"cancel" for
// AbsoluteTimeout (seconds).
const SpecialTimeout = -1

// InfiniteTimeout is Originate's sentinel for an explicit "never time
// out" request, distinct from leaving Timeout unset (0): it is the one
// Timeout value serialized onto the wire as "-1" rather than omitted.
const InfiniteTimeout = 1<<31 - 1

// NewAbsoluteTimeout builds an AbsoluteTimeout action.
func NewAbsoluteTimeout(channel string, timeout int) *AbsoluteTimeout {
	a := &AbsoluteTimeout{Channel: channel, Timeout: timeout}
	a.Self = a
	return a
}

func (a *AbsoluteTimeout) BuildMessage() Message {
	m := NewMessage(KindAction, "AbsoluteTimeout")
	m.Set("Channel", a.Channel)
	if a.Timeout <= 0 {
		m.Set("Timeout", "0")
	} else {
		m.Set("Timeout", strconv.Itoa(a.Timeout))
	}
	return m
}

// Command executes a free-form CLI command. Its response is a
// Follows-kind message; the command's raw output ends up in the
// response's Data field, not in a header.
type Command struct {
	BaseAction
	Command string
}

// NewCommand builds a Command action.
func NewCommand(command string) *Command {
	a := &Command{Command: command}
	a.Self = a
	return a
}

func (a *Command) BuildMessage() Message {
	m := NewMessage(KindAction, "Command")
	m.Set("Command", a.Command)
	return m
}

// Events changes which event classes the connection receives.
// EventMask may be set directly to a decimal OR of the EventMask*
// flags, a comma-separated list of flag names, or "on"/"off".
type Events struct {
	BaseAction
	EventMask string
}

// NewEvents builds an Events action from a raw mask string ("on",
// "off", a decimal number, or a comma list of flag names).
func NewEvents(mask string) *Events {
	a := &Events{EventMask: mask}
	a.Self = a
	return a
}

// NewEventsFromFlags builds an Events action whose mask is the
// decimal OR of the given EventMask* flag values.
func NewEventsFromFlags(flags ...int) *Events {
	sum := 0
	for _, f := range flags {
		sum |= f
	}
	return NewEvents(strconv.Itoa(sum))
}

func (a *Events) BuildMessage() Message {
	m := NewMessage(KindAction, "Events")
	m.Set("EventMask", a.EventMask)
	return m
}

// ExtensionState queries the state of a dialplan extension.
type ExtensionState struct {
	BaseAction
	Context string
	Exten   string
}

// NewExtensionState builds an ExtensionState action.
func NewExtensionState(context, exten string) *ExtensionState {
	a := &ExtensionState{Context: context, Exten: exten}
	a.Self = a
	return a
}

func (a *ExtensionState) BuildMessage() Message {
	m := NewMessage(KindAction, "ExtensionState")
	m.Set("Context", a.Context)
	m.Set("Exten", a.Exten)
	return m
}

// Getvar retrieves the value of a channel (or global) variable. After
// a successful Apply/HandleResponse, Value holds the response's
// "Value" header.
type Getvar struct {
	BaseAction
	Channel  string
	Variable string
	Value    string
}

// NewGetvar builds a Getvar action.
func NewGetvar(channel, variable string) *Getvar {
	a := &Getvar{Channel: channel, Variable: variable}
	a.Self = a
	return a
}

func (a *Getvar) BuildMessage() Message {
	m := NewMessage(KindAction, "Getvar")
	if a.Channel != "" {
		m.Set("Channel", a.Channel)
	}
	m.Set("Variable", a.Variable)
	return m
}

// HandleResponse runs the default error mapping, then copies the
// response's Value header into a.Value.
func (a *Getvar) HandleResponse(resp Message) (Message, error) {
	resp, err := a.BaseAction.HandleResponse(resp)
	if err != nil {
		return resp, err
	}
	a.Value = resp.Get("Value")
	return resp, nil
}

// Hangup hangs up a channel.
type Hangup struct {
	BaseAction
	Channel string
}

// NewHangup builds a Hangup action.
func NewHangup(channel string) *Hangup {
	a := &Hangup{Channel: channel}
	a.Self = a
	return a
}

func (a *Hangup) BuildMessage() Message {
	m := NewMessage(KindAction, "Hangup")
	m.Set("Channel", a.Channel)
	return m
}

// ListCommands lists every action the manager understands.
type ListCommands struct {
	BaseAction
}

// NewListCommands builds a ListCommands action.
func NewListCommands() *ListCommands {
	a := &ListCommands{}
	a.Self = a
	return a
}

func (a *ListCommands) BuildMessage() Message {
	return NewMessage(KindAction, "ListCommands")
}

// Login authenticates the connection. A non-Success response raises
// LoginError instead of the default error-taxonomy mapping, since a
// failed login is reported as an Error response whose Message is not
// one of the standard action-error strings.
type Login struct {
	BaseAction
	Username string
	Secret   string
}

// NewLogin builds a Login action.
func NewLogin(username, secret string) *Login {
	a := &Login{Username: username, Secret: secret}
	a.Self = a
	return a
}

func (a *Login) BuildMessage() Message {
	m := NewMessage(KindAction, "Login")
	m.Set("Username", a.Username)
	m.Set("Secret", a.Secret)
	return m
}

// HandleResponse requires the response kind to be "Success"; anything
// else is reported as LoginError.
func (a *Login) HandleResponse(resp Message) (Message, error) {
	if !resp.Is("Success") {
		return resp, &LoginError{Message: resp.Get("Message")}
	}
	return resp, nil
}

// Logoff ends the manager session.
type Logoff struct {
	BaseAction
}

// NewLogoff builds a Logoff action.
func NewLogoff() *Logoff {
	a := &Logoff{}
	a.Self = a
	return a
}

func (a *Logoff) BuildMessage() Message {
	return NewMessage(KindAction, "Logoff")
}

// Ping checks that the manager is still responsive.
type Ping struct {
	BaseAction
}

// NewPing builds a Ping action.
func NewPing() *Ping {
	a := &Ping{}
	a.Self = a
	return a
}

func (a *Ping) BuildMessage() Message {
	return NewMessage(KindAction, "Ping")
}

// MailboxStatus reports whether a mailbox has waiting messages.
type MailboxStatus struct {
	BaseAction
	Mailbox string
}

// NewMailboxStatus builds a MailboxStatus action.
func NewMailboxStatus(mailbox string) *MailboxStatus {
	a := &MailboxStatus{Mailbox: mailbox}
	a.Self = a
	return a
}

func (a *MailboxStatus) BuildMessage() Message {
	m := NewMessage(KindAction, "MailboxStatus")
	m.Set("Mailbox", a.Mailbox)
	return m
}

// MailboxCount reports the new and old message counts for a mailbox.
type MailboxCount struct {
	BaseAction
	Mailbox string
}

// NewMailboxCount builds a MailboxCount action.
func NewMailboxCount(mailbox string) *MailboxCount {
	a := &MailboxCount{Mailbox: mailbox}
	a.Self = a
	return a
}

func (a *MailboxCount) BuildMessage() Message {
	m := NewMessage(KindAction, "MailboxCount")
	m.Set("Mailbox", a.Mailbox)
	return m
}

// Redirect moves a channel (and, optionally, its bridged peer) to a
// new context/extension/priority.
type Redirect struct {
	BaseAction
	Channel      string
	ExtraChannel string
	Context      string
	Exten        string
	Priority     string
}

// NewRedirect builds a Redirect action.
func NewRedirect(channel, context, exten, priority string) *Redirect {
	a := &Redirect{Channel: channel, Context: context, Exten: exten, Priority: priority}
	a.Self = a
	return a
}

func (a *Redirect) BuildMessage() Message {
	m := NewMessage(KindAction, "Redirect")
	m.Set("Channel", a.Channel)
	if a.ExtraChannel != "" {
		m.Set("ExtraChannel", a.ExtraChannel)
	}
	m.Set("Context", a.Context)
	m.Set("Exten", a.Exten)
	m.Set("Priority", a.Priority)
	return m
}

// Setvar sets the value of a channel (or global) variable.
type Setvar struct {
	BaseAction
	Channel  string
	Variable string
	Value    string
}

// NewSetvar builds a Setvar action.
func NewSetvar(channel, variable, value string) *Setvar {
	a := &Setvar{Channel: channel, Variable: variable, Value: value}
	a.Self = a
	return a
}

func (a *Setvar) BuildMessage() Message {
	m := NewMessage(KindAction, "Setvar")
	if a.Channel != "" {
		m.Set("Channel", a.Channel)
	}
	m.Set("Variable", a.Variable)
	m.Set("Value", a.Value)
	return m
}

// Status requests channel status events, optionally scoped to one
// channel.
type Status struct {
	BaseAction
	Channel string
}

// NewStatus builds a Status action.
func NewStatus(channel string) *Status {
	a := &Status{Channel: channel}
	a.Self = a
	return a
}

func (a *Status) BuildMessage() Message {
	m := NewMessage(KindAction, "Status")
	if a.Channel != "" {
		m.Set("Channel", a.Channel)
	}
	return m
}

// UserEvent raises an arbitrary application-defined event, carrying
// whatever extra headers the caller supplies. Extra is iterated in the
// order supplied (as a slice of Header, not a map) so header order on
// the wire matches registration order.
type UserEvent struct {
	BaseAction
	Name  string
	Extra []Header
}

// NewUserEvent builds a UserEvent action.
func NewUserEvent(name string, extra ...Header) *UserEvent {
	a := &UserEvent{Name: name, Extra: extra}
	a.Self = a
	return a
}

func (a *UserEvent) BuildMessage() Message {
	m := NewMessage(KindAction, "UserEvent")
	m.Set("UserEvent", a.Name)
	for _, h := range a.Extra {
		m.Add(h.Name, h.Value)
	}
	return m
}

// QueuePause pauses or unpauses a queue member.
type QueuePause struct {
	BaseAction
	Interface string
	Queue     string
	Paused    bool
}

// NewQueuePause builds a QueuePause action.
func NewQueuePause(iface string, paused bool) *QueuePause {
	a := &QueuePause{Interface: iface, Paused: paused}
	a.Self = a
	return a
}

func (a *QueuePause) BuildMessage() Message {
	m := NewMessage(KindAction, "QueuePause")
	m.Set("Interface", a.Interface)
	if a.Queue != "" {
		m.Set("Queue", a.Queue)
	}
	if a.Paused {
		m.Set("Paused", "true")
	} else {
		m.Set("Paused", "false")
	}
	return m
}

// QueueStatus requests queue member/caller status, optionally scoped
// to one queue or member.
type QueueStatus struct {
	BaseAction
	Queue    string
	Member   string
	ActionID string
}

// NewQueueStatus builds a QueueStatus action.
func NewQueueStatus() *QueueStatus {
	a := &QueueStatus{}
	a.Self = a
	return a
}

func (a *QueueStatus) BuildMessage() Message {
	m := NewMessage(KindAction, "QueueStatus")
	if a.Queue != "" {
		m.Set("Queue", a.Queue)
	}
	if a.Member != "" {
		m.Set("Member", a.Member)
	}
	if a.ActionID != "" {
		m.Set("ActionID", a.ActionID)
	}
	return m
}

// Originate places a call. Either (Context, Exten, Priority) or
// (Application, Data) must be set to tell Asterisk what to do once the
// channel answers; Context non-empty selects the extension form.
type Originate struct {
	BaseAction
	Channel     string
	Context     string
	Exten       string
	Priority    string
	Application string
	Data        string
	// Timeout is in milliseconds. Zero (the unset default) omits the
	// header entirely, letting Asterisk apply its own default.
	// InfiniteTimeout requests no timeout at all and is serialized as
	// "-1"; any other positive value is serialized as-is.
	Timeout  int
	CallerID string
	Account  string
	Async    bool
	Variable []Header
}

// NewOriginateExten builds an Originate action that continues into a
// dialplan context/extension/priority.
func NewOriginateExten(channel, context, exten, priority string) *Originate {
	a := &Originate{Channel: channel, Context: context, Exten: exten, Priority: priority}
	a.Self = a
	return a
}

// NewOriginateApp builds an Originate action that connects the
// channel directly to an application.
func NewOriginateApp(channel, application, data string) *Originate {
	a := &Originate{Channel: channel, Application: application, Data: data}
	a.Self = a
	return a
}

func (a *Originate) BuildMessage() Message {
	m := NewMessage(KindAction, "Originate")
	m.Set("Channel", a.Channel)

	if a.Context != "" {
		m.Set("Context", a.Context)
		m.Set("Exten", a.Exten)
		m.Set("Priority", a.Priority)
	} else {
		m.Set("Application", a.Application)
		m.Set("Data", a.Data)
	}

	if a.Timeout == InfiniteTimeout {
		m.Set("Timeout", "-1")
	} else if a.Timeout > 0 {
		m.Set("Timeout", strconv.Itoa(a.Timeout))
	}

	if a.CallerID != "" {
		m.Set("CallerID", a.CallerID)
	}
	if a.Account != "" {
		m.Set("Account", a.Account)
	}
	if a.Async {
		m.Set("Async", "true")
	}

	for _, v := range a.Variable {
		m.Add("Variable", v.Name+"="+v.Value)
	}

	return m
}
