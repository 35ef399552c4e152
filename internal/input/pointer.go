package input

type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Modifiers held during a pointer or wheel event.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Super bool
}
