/*
Package mgr implements a client for the Asterisk-style Manager (MGR)
protocol: a persistent TCP channel carrying Action, Response, and Event
messages between a client and a PBX.

It owns only the socket and the wire framing; everything else —
dialplan control, conference management, variable access — is a
typed Action built on top of the same Message primitive.

Connecting and logging in:

	c, err := mgr.Connect("pbx.example.com", mgr.DefaultPort)
	if err != nil {
		// error handling
	}
	if _, err := mgr.Apply(mgr.NewLogin("user", "secret"), c); err != nil {
		// login error handling
	}

Sending an action and reading the response:

	resp, err := mgr.Apply(mgr.NewPing(), c)

Registering for events:

	sub := c.RegisterEvent("Hangup", func(e mgr.Message) {
		fmt.Println("hangup on", e.Get("Channel"))
	})
	defer sub.Release()

	for {
		if err := c.WaitEvent(); err != nil {
			break
		}
		c.ProcessEvents()
	}

Multi-message actions:

	ConfbridgeList and MeetmeList stream one event per participant
	followed by a terminal "...Complete" event rather than returning
	their data in response headers. GetConfbridgeList and
	GetMeetmeList collect that sequence and return it synchronously,
	rather than requiring a self-deleting callback.
*/
package mgr
