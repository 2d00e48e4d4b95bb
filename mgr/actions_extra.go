package mgr

// Conference bridge, legacy meetme, and module-management actions.

// Bridge joins two channels directly, bypassing the dialplan.
type Bridge struct {
	BaseAction
	Channel1 string
	Channel2 string
	Tone     bool
}

// NewBridge builds a Bridge action.
func NewBridge(channel1, channel2 string) *Bridge {
	a := &Bridge{Channel1: channel1, Channel2: channel2}
	a.Self = a
	return a
}

func (a *Bridge) BuildMessage() Message {
	m := NewMessage(KindAction, "Bridge")
	m.Set("Channel1", a.Channel1)
	m.Set("Channel2", a.Channel2)
	if a.Tone {
		m.Set("Tone", "Yes")
	}
	return m
}

// ModuleLoad loads, unloads, or reloads an Asterisk module.
type ModuleLoad struct {
	BaseAction
	Module   string
	LoadType string // "load", "unload", or "reload"
}

// NewModuleLoad builds a ModuleLoad action.
func NewModuleLoad(module, loadType string) *ModuleLoad {
	a := &ModuleLoad{Module: module, LoadType: loadType}
	a.Self = a
	return a
}

func (a *ModuleLoad) BuildMessage() Message {
	m := NewMessage(KindAction, "ModuleLoad")
	m.Set("Module", a.Module)
	m.Set("LoadType", a.LoadType)
	return m
}

// Reload reloads one module's configuration, or every module's if
// Module is empty.
type Reload struct {
	BaseAction
	Module string
}

// NewReload builds a Reload action.
func NewReload(module string) *Reload {
	a := &Reload{Module: module}
	a.Self = a
	return a
}

func (a *Reload) BuildMessage() Message {
	m := NewMessage(KindAction, "Reload")
	if a.Module != "" {
		m.Set("Module", a.Module)
	}
	return m
}

// ConfbridgeList requests the roster of a conference bridge. Its
// result arrives as a ConfbridgeList event per participant followed by
// a ConfbridgeListComplete event, rather than as response headers;
// GetConfbridgeList below collects that sequence synchronously.
type ConfbridgeList struct {
	BaseAction
	Conference string
}

// NewConfbridgeList builds a ConfbridgeList action.
func NewConfbridgeList(conference string) *ConfbridgeList {
	a := &ConfbridgeList{Conference: conference}
	a.Self = a
	return a
}

func (a *ConfbridgeList) BuildMessage() Message {
	m := NewMessage(KindAction, "ConfbridgeList")
	m.Set("Conference", a.Conference)
	return m
}

// GetConfbridgeList runs a ConfbridgeList action and blocks, collecting
// every ConfbridgeList event up to the matching ConfbridgeListComplete,
// then returns the participant events. This is a synchronous collector
// built on a temporary event subscription released via defer once the
// terminal event is seen, rather than a long-lived hold action.
func GetConfbridgeList(c *Connection, conference string) ([]Message, error) {
	var participants []Message
	var done bool

	sub := c.RegisterEvent("ConfbridgeList", func(e Message) {
		participants = append(participants, e)
	})
	defer sub.Release()

	completeSub := c.RegisterEvent("ConfbridgeListComplete", func(Message) {
		done = true
	})
	defer completeSub.Release()

	if _, err := Apply(NewConfbridgeList(conference), c); err != nil {
		return nil, err
	}

	for !done {
		if err := c.WaitEvent(); err != nil {
			return participants, err
		}
		c.ProcessEvents()
	}
	return participants, nil
}

// ConfbridgeKick removes a participant channel from a conference.
type ConfbridgeKick struct {
	BaseAction
	Conference string
	Channel    string
}

// NewConfbridgeKick builds a ConfbridgeKick action.
func NewConfbridgeKick(conference, channel string) *ConfbridgeKick {
	a := &ConfbridgeKick{Conference: conference, Channel: channel}
	a.Self = a
	return a
}

func (a *ConfbridgeKick) BuildMessage() Message {
	m := NewMessage(KindAction, "ConfbridgeKick")
	m.Set("Conference", a.Conference)
	m.Set("Channel", a.Channel)
	return m
}

// ConfbridgeToggleMute mutes or unmutes a conference participant.
type ConfbridgeToggleMute struct {
	BaseAction
	Conference string
	Channel    string
}

// NewConfbridgeToggleMute builds a ConfbridgeToggleMute action.
func NewConfbridgeToggleMute(conference, channel string) *ConfbridgeToggleMute {
	a := &ConfbridgeToggleMute{Conference: conference, Channel: channel}
	a.Self = a
	return a
}

func (a *ConfbridgeToggleMute) BuildMessage() Message {
	m := NewMessage(KindAction, "ConfbridgeMute")
	m.Set("Conference", a.Conference)
	m.Set("Channel", a.Channel)
	return m
}

// ConfbridgeStartRecord begins recording a conference bridge.
type ConfbridgeStartRecord struct {
	BaseAction
	Conference string
	RecordFile string
}

// NewConfbridgeStartRecord builds a ConfbridgeStartRecord action.
func NewConfbridgeStartRecord(conference, recordFile string) *ConfbridgeStartRecord {
	a := &ConfbridgeStartRecord{Conference: conference, RecordFile: recordFile}
	a.Self = a
	return a
}

func (a *ConfbridgeStartRecord) BuildMessage() Message {
	m := NewMessage(KindAction, "ConfbridgeStartRecord")
	m.Set("Conference", a.Conference)
	if a.RecordFile != "" {
		m.Set("RecordFile", a.RecordFile)
	}
	return m
}

// ConfbridgeStopRecord stops recording a conference bridge.
type ConfbridgeStopRecord struct {
	BaseAction
	Conference string
}

// NewConfbridgeStopRecord builds a ConfbridgeStopRecord action.
func NewConfbridgeStopRecord(conference string) *ConfbridgeStopRecord {
	a := &ConfbridgeStopRecord{Conference: conference}
	a.Self = a
	return a
}

func (a *ConfbridgeStopRecord) BuildMessage() Message {
	m := NewMessage(KindAction, "ConfbridgeStopRecord")
	m.Set("Conference", a.Conference)
	return m
}

// MeetmeList requests the roster of a legacy MeetMe conference, the
// predecessor to ConfBridge retained by many deployments. Like
// ConfbridgeList, results stream as MeetmeList events terminated by
// MeetmeListComplete.
type MeetmeList struct {
	BaseAction
	Conference string
}

// NewMeetmeList builds a MeetmeList action.
func NewMeetmeList(conference string) *MeetmeList {
	a := &MeetmeList{Conference: conference}
	a.Self = a
	return a
}

func (a *MeetmeList) BuildMessage() Message {
	m := NewMessage(KindAction, "MeetmeList")
	if a.Conference != "" {
		m.Set("Conference", a.Conference)
	}
	return m
}

// GetMeetmeList mirrors GetConfbridgeList for the legacy MeetMe event
// sequence.
func GetMeetmeList(c *Connection, conference string) ([]Message, error) {
	var participants []Message
	var done bool

	sub := c.RegisterEvent("MeetmeList", func(e Message) {
		participants = append(participants, e)
	})
	defer sub.Release()

	completeSub := c.RegisterEvent("MeetmeListComplete", func(Message) {
		done = true
	})
	defer completeSub.Release()

	if _, err := Apply(NewMeetmeList(conference), c); err != nil {
		return nil, err
	}

	for !done {
		if err := c.WaitEvent(); err != nil {
			return participants, err
		}
		c.ProcessEvents()
	}
	return participants, nil
}
