package mgr

// Action is any value that knows how to build its own Action message
// and how to interpret the Response it receives back.
type Action interface {
	// BuildMessage produces the wire message for this action, with
	// the Action primary header set and any domain-specific secondary
	// headers populated.
	BuildMessage() Message

	// HandleResponse inspects resp, optionally returning a
	// domain-specific error, and otherwise returns resp unchanged.
	HandleResponse(resp Message) (Message, error)
}

// BaseAction supplies the default HandleResponse error-taxonomy
// mapping, classifying an Error response's Message text into one of
// the typed errors in errors.go. Concrete actions embed BaseAction and
// call BaseAction.HandleResponse first, adding their own checks
// afterward.
type BaseAction struct {
	// Self is the concrete action these error values should carry, so
	// that ActionError.Action points at the action that failed rather
	// than at the embedded BaseAction value. Concrete action
	// constructors set this to themselves.
	Self Action
}

// HandleResponse maps an Error-kind response's Message header to a
// typed failure using the exact-match table below, returning resp
// unchanged for any other response.
func (b BaseAction) HandleResponse(resp Message) (Message, error) {
	if !resp.Is("Error") {
		return resp, nil
	}

	msg := resp.Get("Message")
	switch msg {
	case permissionErrorString:
		return resp, &PermissionDenied{}
	case authenticationErrorString:
		return resp, &AuthenticationRequired{}
	}

	if mk, ok := errorMessageTable[msg]; ok {
		return resp, mk(msg, b.Self)
	}

	return resp, nil
}

// Apply sends a over c and runs its HandleResponse: invocation sugar
// equivalent to c.SendAction(a) followed by a.HandleResponse(r).
func Apply(a Action, c *Connection) (Message, error) {
	resp, err := c.SendAction(a)
	if err != nil {
		return Message{}, err
	}
	return a.HandleResponse(resp)
}
