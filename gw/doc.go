/*
Package gw implements a client for the stdio-based Gateway (GW)
protocol used by a dialplan application launched per-call: environment
parsing, command framing, reply parsing, and hangup/pipe signal
detection.

Starting a call:

	e, err := gw.New()
	if err != nil {
		// error handling
	}
	defer e.Close()

	channel := e.Get("agi_channel")

Running commands:

	if _, err := e.Answer(); err != nil {
		// hangup, application error, or transport failure
	}
	if _, err := e.StreamFile("hello-world", "", 0); err != nil {
		// ...
	}

Every command method sends one wire command (Verbose sends one per
line of its text) and parses its reply through Execute, which applies
the hangup/result/pipe checks from the protocol before returning.
*/
package gw
