package gw

import (
	"fmt"
	"strconv"
	"strings"
)

// quote wraps s in double quotes, emitting nothing between them for an
// empty string. Every argument on the wire is quoted this way, even
// ones that are never expected to contain whitespace.
func quote(s string) string { return "\"" + s + "\"" }

// Answer answers the channel.
func (e *Engine) Answer() (Result, error) { return e.Execute("ANSWER") }

// ChannelStatus reports the channel's status, or the named channel's
// if channel is non-empty.
func (e *Engine) ChannelStatus(channel string) (Result, error) {
	cmd := "CHANNEL STATUS"
	if channel != "" {
		cmd += " " + quote(channel)
	}
	return e.Execute(cmd)
}

// Noop sends a no-op, optionally carrying diagnostic arguments.
func (e *Engine) Noop(args ...string) (Result, error) {
	cmd := "NOOP"
	for _, a := range args {
		cmd += " " + quote(a)
	}
	return e.Execute(cmd)
}

// Hangup hangs up the channel, or the named channel if channel is
// non-empty.
func (e *Engine) Hangup(channel string) (Result, error) {
	cmd := "HANGUP"
	if channel != "" {
		cmd += " " + quote(channel)
	}
	return e.Execute(cmd)
}

// StreamFile plays file, interruptible by any of escapeDigits,
// starting at offset samples in if offset is non-zero.
func (e *Engine) StreamFile(file, escapeDigits string, offset int) (Result, error) {
	cmd := fmt.Sprintf("STREAM FILE %s %s", quote(file), quote(escapeDigits))
	if offset != 0 {
		cmd += " " + strconv.Itoa(offset)
	}
	return e.Execute(cmd)
}

// ControlStreamFile plays file with rewind/fast-forward/pause
// controls layered onto the plain STREAM FILE command. skipMs,
// forward, rewind, and pause are optional trailing arguments: each is
// emitted only if it, or a later argument, is non-default, with
// earlier defaults materialized so positions align. Despite its name
// this still sends "STREAM FILE" on the wire — the richer controls
// are just later positional arguments of the same command.
func (e *Engine) ControlStreamFile(file, escapeDigits string, skipMs int, forward, rewind, pause string) (Result, error) {
	last := -1
	for i, nonDefault := range []bool{skipMs != 0, forward != "", rewind != "", pause != ""} {
		if nonDefault {
			last = i
		}
	}

	parts := []string{"STREAM FILE", quote(file), quote(escapeDigits)}
	if last >= 0 {
		parts = append(parts, strconv.Itoa(skipMs))
	}
	if last >= 1 {
		parts = append(parts, quote(forward))
	}
	if last >= 2 {
		parts = append(parts, quote(rewind))
	}
	if last >= 3 {
		parts = append(parts, quote(pause))
	}
	return e.Execute(strings.Join(parts, " "))
}

// DatabaseGet reads family/key and returns its value. A reply
// reporting no such entry is surfaced as DatabaseError rather than an
// empty string, so callers can't mistake "absent" for "empty".
func (e *Engine) DatabaseGet(family, key string) (string, error) {
	res, err := e.Execute(fmt.Sprintf("DATABASE GET %s %s", quote(family), quote(key)))
	if err != nil {
		return "", err
	}
	if res.Result == 0 {
		return "", &DatabaseError{Family: family, Key: key}
	}
	return res.Data, nil
}

// DatabasePut writes val under family/key.
func (e *Engine) DatabasePut(family, key, val string) (Result, error) {
	res, err := e.Execute(fmt.Sprintf("DATABASE PUT %s %s %s", quote(family), quote(key), quote(val)))
	if err != nil {
		return res, err
	}
	if res.Result == 0 {
		return res, &DatabaseError{Family: family, Key: key}
	}
	return res, nil
}

// DatabaseDel removes family/key.
func (e *Engine) DatabaseDel(family, key string) (Result, error) {
	res, err := e.Execute(fmt.Sprintf("DATABASE DEL %s %s", quote(family), quote(key)))
	if err != nil {
		return res, err
	}
	if res.Result == 0 {
		return res, &DatabaseError{Family: family, Key: key}
	}
	return res, nil
}

// DatabaseDelTree removes every key under family, or under
// family/keytree if keytree is non-empty.
func (e *Engine) DatabaseDelTree(family, keytree string) (Result, error) {
	cmd := fmt.Sprintf("DATABASE DELTREE %s", quote(family))
	if keytree != "" {
		cmd += " " + quote(keytree)
	}
	res, err := e.Execute(cmd)
	if err != nil {
		return res, err
	}
	if res.Result == 0 {
		return res, &DatabaseError{Family: family, Key: keytree}
	}
	return res, nil
}

// Exec runs application with the given options string.
func (e *Engine) Exec(application, options string) (Result, error) {
	cmd := "EXEC " + quote(application)
	if options != "" {
		cmd += " " + quote(options)
	}
	return e.Execute(cmd)
}

// GetData plays file and collects DTMF into Result.Data. timeout and
// maxDigits are optional trailing arguments materialized per the same
// rule as ControlStreamFile.
func (e *Engine) GetData(file string, timeout, maxDigits int) (Result, error) {
	parts := []string{"GET DATA", quote(file)}
	if maxDigits != 0 {
		parts = append(parts, strconv.Itoa(timeout), strconv.Itoa(maxDigits))
	} else if timeout != 0 {
		parts = append(parts, strconv.Itoa(timeout))
	}
	return e.Execute(strings.Join(parts, " "))
}

// GetFullVariable evaluates an expression (which may reference
// channel, if non-empty). A HangupByResult outcome is reported as
// Result.Data == "hangup" with a nil error instead of propagating.
func (e *Engine) GetFullVariable(expr, channel string) (Result, error) {
	cmd := "GET FULL VARIABLE " + quote(expr)
	if channel != "" {
		cmd += " " + quote(channel)
	}
	res, err := e.Execute(cmd)
	if _, ok := err.(*HangupByResult); ok {
		res.Data = "hangup"
		return res, nil
	}
	return res, err
}

// GetOption plays file, interruptible by escapeDigits, waiting up to
// timeout for a DTMF match against the current dialplan options.
// timeout is an optional trailing argument; escapeDigits is
// materialized ahead of it even if empty, per the same rule as
// ControlStreamFile.
func (e *Engine) GetOption(file, escapeDigits string, timeout int) (Result, error) {
	parts := []string{"GET OPTION", quote(file)}
	if timeout != 0 {
		parts = append(parts, quote(escapeDigits), strconv.Itoa(timeout))
	} else if escapeDigits != "" {
		parts = append(parts, quote(escapeDigits))
	}
	return e.Execute(strings.Join(parts, " "))
}

// GetVariable reads a channel/global variable. Like GetFullVariable, a
// HangupByResult outcome is swallowed and reported as Result.Data ==
// "hangup".
func (e *Engine) GetVariable(name string) (Result, error) {
	res, err := e.Execute("GET VARIABLE " + quote(name))
	if _, ok := err.(*HangupByResult); ok {
		res.Data = "hangup"
		return res, nil
	}
	return res, err
}

// SetVariable sets a channel/global variable.
func (e *Engine) SetVariable(name, val string) (Result, error) {
	return e.Execute(fmt.Sprintf("SET VARIABLE %s %s", quote(name), quote(val)))
}

// ReceiveChar waits up to timeout milliseconds for a single character.
func (e *Engine) ReceiveChar(timeout int) (Result, error) {
	return e.Execute(fmt.Sprintf("RECEIVE CHAR %d", timeout))
}

// ReceiveText waits up to timeout milliseconds for a text message.
func (e *Engine) ReceiveText(timeout int) (Result, error) {
	return e.Execute(fmt.Sprintf("RECEIVE TEXT %d", timeout))
}

// RecordFile records to file in format, interruptible by
// escapeDigits, for up to timeout milliseconds. offset, beep, and
// silence are optional trailing arguments emitted in order only when
// applicable.
func (e *Engine) RecordFile(file, format, escapeDigits string, timeout, offset int, beep bool, silence int) (Result, error) {
	parts := []string{"RECORD FILE", quote(file), quote(format), quote(escapeDigits), strconv.Itoa(timeout)}
	if offset != 0 {
		parts = append(parts, strconv.Itoa(offset))
	}
	if beep {
		parts = append(parts, "BEEP")
	}
	if silence > 0 {
		parts = append(parts, fmt.Sprintf("s=%d", silence))
	}
	return e.Execute(strings.Join(parts, " "))
}

// SayAlpha speaks s letter by letter.
func (e *Engine) SayAlpha(s string) (Result, error) {
	return e.Execute("SAY ALPHA " + quote(s))
}

// SayAlphaInt speaks the decimal digits of n letter by letter.
func (e *Engine) SayAlphaInt(n int) (Result, error) {
	return e.SayAlpha(strconv.Itoa(n))
}

// SayDate speaks a date given as Unix seconds.
func (e *Engine) SayDate(unixtime int64) (Result, error) {
	return e.Execute(fmt.Sprintf("SAY DATE %d", unixtime))
}

// SayDateTime speaks a date/time given as Unix seconds, interruptible
// by escapeDigits. format and timezone are optional trailing
// arguments, materialized the same way as ControlStreamFile's.
func (e *Engine) SayDateTime(unixtime int64, escapeDigits, format, timezone string) (Result, error) {
	parts := []string{"SAY DATETIME", strconv.FormatInt(unixtime, 10), quote(escapeDigits)}
	if timezone != "" {
		parts = append(parts, quote(format), quote(timezone))
	} else if format != "" {
		parts = append(parts, quote(format))
	}
	return e.Execute(strings.Join(parts, " "))
}

// SayDigits speaks digits one at a time.
func (e *Engine) SayDigits(digits string) (Result, error) {
	return e.Execute("SAY DIGITS " + quote(digits))
}

// SayNumber speaks n as a cardinal number, interruptible by
// escapeDigits.
func (e *Engine) SayNumber(n int, escapeDigits string) (Result, error) {
	return e.Execute(fmt.Sprintf("SAY NUMBER %d %s", n, quote(escapeDigits)))
}

// SayPhonetic speaks s using the phonetic alphabet.
func (e *Engine) SayPhonetic(s string) (Result, error) {
	return e.Execute("SAY PHONETIC " + quote(s))
}

// SayTime speaks a time given as Unix seconds.
func (e *Engine) SayTime(unixtime int64) (Result, error) {
	return e.Execute(fmt.Sprintf("SAY TIME %d", unixtime))
}

// SendImage sends file to channels that support it.
func (e *Engine) SendImage(file string) (Result, error) {
	return e.Execute("SEND IMAGE " + quote(file))
}

// SendText sends text to channels that support it.
func (e *Engine) SendText(text string) (Result, error) {
	return e.Execute("SEND TEXT " + quote(text))
}

// SetAutoHangup schedules the channel to hang up after seconds.
func (e *Engine) SetAutoHangup(seconds int) (Result, error) {
	return e.Execute(fmt.Sprintf("SET AUTOHANGUP %d", seconds))
}

// SetCallerID sets the caller ID string.
func (e *Engine) SetCallerID(clid string) (Result, error) {
	return e.Execute("SET CALLERID " + quote(clid))
}

// SetCallerIDInt sets the caller ID to the decimal digits of n.
func (e *Engine) SetCallerIDInt(n int) (Result, error) {
	return e.SetCallerID(strconv.Itoa(n))
}

// SetContext sets the dialplan context the channel resumes into.
func (e *Engine) SetContext(ctx string) (Result, error) {
	return e.Execute("SET CONTEXT " + quote(ctx))
}

// SetExtension sets the dialplan extension.
func (e *Engine) SetExtension(ext string) (Result, error) {
	return e.Execute("SET EXTENSION " + quote(ext))
}

// SetExtensionInt sets the dialplan extension to the decimal digits of n.
func (e *Engine) SetExtensionInt(n int) (Result, error) {
	return e.SetExtension(strconv.Itoa(n))
}

// SetMusic turns music-on-hold on or off, optionally naming a class.
func (e *Engine) SetMusic(on bool, class string) (Result, error) {
	state := "OFF"
	if on {
		state = "ON"
	}
	cmd := "SET MUSIC " + state
	if class != "" {
		cmd += " " + quote(class)
	}
	return e.Execute(cmd)
}

// SetPriority sets the dialplan priority.
func (e *Engine) SetPriority(priority string) (Result, error) {
	return e.Execute("SET PRIORITY " + quote(priority))
}

// SetPriorityInt sets the dialplan priority to n.
func (e *Engine) SetPriorityInt(n int) (Result, error) {
	return e.SetPriority(strconv.Itoa(n))
}

// TDDMode turns TDD transmission/reception on or off.
func (e *Engine) TDDMode(on bool) (Result, error) {
	mode := "off"
	if on {
		mode = "on"
	}
	return e.TDDModeString(mode)
}

// TDDModeString sets the TDD mode directly ("on", "off", or "mate").
func (e *Engine) TDDModeString(mode string) (Result, error) {
	return e.Execute("TDD MODE " + mode)
}

// Verbose logs text at the given verbosity level. text is split on
// newlines and one VERBOSE command is emitted per line, since a
// command line must never itself contain a newline.
func (e *Engine) Verbose(text string, level int) (Result, error) {
	var last Result
	for _, line := range strings.Split(text, "\n") {
		res, err := e.Execute(fmt.Sprintf("VERBOSE %s %d", quote(line), level))
		if err != nil {
			return res, err
		}
		last = res
	}
	return last, nil
}

// WaitForDigit waits up to timeout milliseconds for a single DTMF
// digit.
func (e *Engine) WaitForDigit(timeout int) (Result, error) {
	return e.Execute(fmt.Sprintf("WAIT FOR DIGIT %d", timeout))
}
