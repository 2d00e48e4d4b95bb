package gw

// Execute sends command and parses its reply: TestHangup is checked
// before send, a reply whose Data is the literal "hangup" becomes
// HangupByResult, a Result of -1 becomes ApplicationError, and a
// broken-pipe signal observed on the write side becomes an IOError.
func (e *Engine) Execute(command string) (Result, error) {
	if err := e.TestHangup(); err != nil {
		return Result{}, err
	}

	if err := e.send(command); err != nil {
		return Result{}, &IOError{Command: command, Err: err}
	}

	res, err := parseResult(e.in)
	e.logDebug(command, res, err)
	if err != nil {
		if _, ok := err.(*InvalidCommand); ok {
			return res, err
		}
		if _, ok := err.(*UsageError); ok {
			return res, err
		}
		if _, ok := err.(*UnknownError); ok {
			return res, err
		}
		return res, &IOError{Command: command, Err: err}
	}

	if res.Data == "hangup" {
		return res, &HangupByResult{Command: command}
	}
	if res.Result == -1 {
		return res, &ApplicationError{Command: command}
	}
	if e.sig.gotPipe.Load() {
		return res, &IOError{Command: command}
	}

	return res, nil
}
