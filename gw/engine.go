package gw

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// envPair is one launch-environment Key: Value line.
type envPair struct {
	Key   string
	Value string
}

// Environment holds the per-call launch variables sent as a block of
// "Key: Value" lines before the command stream begins. Pairs are kept
// in an ordered slice, with an index into it by key, so that both
// lookup by name and iteration in the order Asterisk sent them are
// available.
type Environment struct {
	pairs []envPair
	index map[string]int
}

func newEnvironment() *Environment {
	return &Environment{index: make(map[string]int)}
}

// set records or overwrites key's value, appending a new pair only the
// first time key is seen.
func (env *Environment) set(key, value string) {
	if i, ok := env.index[key]; ok {
		env.pairs[i].Value = value
		return
	}
	env.index[key] = len(env.pairs)
	env.pairs = append(env.pairs, envPair{Key: key, Value: value})
}

// Get returns the value stored under key, or "" if absent.
func (env *Environment) Get(key string) string {
	if i, ok := env.index[key]; ok {
		return env.pairs[i].Value
	}
	return ""
}

// Len returns the number of pairs.
func (env *Environment) Len() int { return len(env.pairs) }

// Range calls f for each pair in insertion order, stopping early if f
// returns false.
func (env *Environment) Range(f func(key, value string) bool) {
	for _, p := range env.pairs {
		if !f(p.Key, p.Value) {
			return
		}
	}
}

// Engine owns the stdio channel to the PBX for one call: the parsed
// launch environment, the command/reply stream, and the signal flags
// that mark an asynchronous hangup or broken pipe. Generalizes
// gami/agi/agi.go's Agi struct, adding signal handling and the
// reply grammar's hangup/application-error discrimination.
type Engine struct {
	Env *Environment

	in  *bufio.Reader
	out *bufio.Writer

	sig *signals

	Logger *slog.Logger
}

// New builds an Engine over the process's stdin/stdout, the normal way
// a dialplan application is launched.
func New() (*Engine, error) {
	return NewEngine(os.Stdin, os.Stdout)
}

// NewEngine builds an Engine over the given streams. Signal handlers
// are installed first, then the environment block is read: Go's signal
// delivery runs on an ordinary goroutine rather than re-entering C
// runtime state, so there is nothing to mask around the read the way a
// POSIX handler installation would need to.
func NewEngine(in io.Reader, out io.Writer) (*Engine, error) {
	e := &Engine{
		Env: newEnvironment(),
		in:  bufio.NewReader(in),
		out: bufio.NewWriter(out),
		sig: newSignals(),
	}

	if err := e.readEnv(); err != nil {
		e.sig.close()
		return nil, err
	}
	return e, nil
}

// Close releases the signal-handling goroutine. Callers that built an
// Engine via New or NewEngine for the lifetime of one call should defer
// Close.
func (e *Engine) Close() {
	e.sig.close()
}

// readEnv reads "Key: Value" lines until the blank line that ends the
// environment block.
func (e *Engine) readEnv() error {
	for {
		line, err := e.in.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return nil
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		e.Env.set(strings.TrimSpace(key), strings.TrimSpace(val))
	}
}

// Get returns the environment value stored under name, or "" if
// absent.
func (e *Engine) Get(name string) string { return e.Env.Get(name) }

// TestHangup raises HangupBySignal if a hangup has been observed since
// construction or the last Clear.
func (e *Engine) TestHangup() error { return e.sig.TestHangup() }

// Clear zeros both signal flags.
func (e *Engine) Clear() { e.sig.Clear() }

func (e *Engine) logDebug(command string, res Result, err error) {
	if e.Logger == nil {
		return
	}
	e.Logger.Debug("gw command", "command", command, "code", res.Code, "result", res.Result, "data", res.Data, "err", err)
}

// send writes command verbatim followed by a newline.
func (e *Engine) send(command string) error {
	if _, err := fmt.Fprintln(e.out, command); err != nil {
		return err
	}
	return e.out.Flush()
}
