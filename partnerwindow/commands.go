package partnerwindow

// command is one request enqueued by the facade for the worker to
// observe, in FIFO order, on its next non-blocking drain.
type command interface{ isCommand() }

type updateTextCmd struct{ text string }
type setEnabledCmd struct{ enabled bool }
type setFontCmd struct{ font int }
type setIdleEnabledCmd struct{ enabled bool }
type clearCmd struct{}
type shutdownCmd struct{}

func (updateTextCmd) isCommand()     {}
func (setEnabledCmd) isCommand()     {}
func (setFontCmd) isCommand()        {}
func (setIdleEnabledCmd) isCommand() {}
func (clearCmd) isCommand()          {}
func (shutdownCmd) isCommand()       {}
