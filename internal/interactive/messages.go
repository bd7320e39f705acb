package interactive

import "github.com/py-lama/jslama/internal/router"

// ActionSelectedMsg picks an entry from the menu.
type ActionSelectedMsg struct {
	Action router.Action
}

// InputSubmittedMsg answers the pending prompt.
type InputSubmittedMsg struct {
	Value string
}

// outcomeMsg carries a finished dispatch back into the loop.
type outcomeMsg router.Outcome

// reportedMsg is sent once an outcome has been printed.
type reportedMsg struct{}
