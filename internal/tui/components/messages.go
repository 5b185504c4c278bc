package components

// SelectionChangedMsg is emitted when a selector moves to another value.
type SelectionChangedMsg struct {
	Label string
	Value string
}

// CheckRequestedMsg is emitted when the check button is pressed.
type CheckRequestedMsg struct{}
