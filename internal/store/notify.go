package store

// Notifier is the transient user-facing message channel. Business-rule
// rejections go through it instead of error returns.
type Notifier interface {
	Success(text string)
	Error(text string)
}

// Notification is one toast-style message.
type Notification struct {
	Err  bool
	Text string
}

// ChannelNotifier forwards notifications over a buffered channel so the UI
// can drain them from its own event loop. Messages are dropped, not blocked
// on, when the buffer is full.
type ChannelNotifier struct {
	ch chan Notification
}

func NewChannelNotifier(buffer int) *ChannelNotifier {
	return &ChannelNotifier{ch: make(chan Notification, buffer)}
}

// C exposes the receive side.
func (n *ChannelNotifier) C() <-chan Notification { return n.ch }

func (n *ChannelNotifier) Success(text string) { n.push(Notification{Text: text}) }

func (n *ChannelNotifier) Error(text string) { n.push(Notification{Err: true, Text: text}) }

func (n *ChannelNotifier) push(msg Notification) {
	select {
	case n.ch <- msg:
	default:
	}
}
