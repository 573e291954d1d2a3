package speech

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/hammamikhairi/ottostep/internal/domain"
	"github.com/hammamikhairi/ottostep/internal/logger"
)

// NotifierOption configures the AlertNotifier.
type NotifierOption func(*AlertNotifier)

// WithOutput sets where alert lines are printed. Nil disables printing.
func WithOutput(w io.Writer) NotifierOption {
	return func(n *AlertNotifier) {
		n.out = w
	}
}

// WithSpeaker also speaks each alert, e.g. through Narrator.Say.
func WithSpeaker(say func(text string)) NotifierOption {
	return func(n *AlertNotifier) {
		n.say = say
	}
}

// WithAlertHandler registers a callback for each alert line. The display
// uses it to flash the message.
func WithAlertHandler(fn func(text string)) NotifierOption {
	return func(n *AlertNotifier) {
		n.onAlert = fn
	}
}

// Compile-time interface check.
var _ domain.TimerNotifier = (*AlertNotifier)(nil)

// AlertNotifier announces finished timers: a printed line, the chime, and
// optionally speech.
type AlertNotifier struct {
	chime   Ringer
	out     io.Writer
	say     func(string)
	onAlert func(string)
	log     *logger.Logger

	mu    sync.Mutex
	count int
}

// NewAlertNotifier creates a notifier ringing chime. chime may be nil.
func NewAlertNotifier(chime Ringer, log *logger.Logger, opts ...NotifierOption) *AlertNotifier {
	n := &AlertNotifier{chime: chime, log: log}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// TimerDone fires every configured alert. Failures are logged, not returned,
// except when nothing at all could be delivered.
func (n *AlertNotifier) TimerDone(ctx context.Context, timerID, timerName string) error {
	line := LineTimerDone(timerName)
	n.log.Info("timer %s done: %s", timerID, timerName)

	n.mu.Lock()
	n.count++
	n.mu.Unlock()

	if n.onAlert != nil {
		n.onAlert(line)
	}
	if n.out != nil {
		fmt.Fprintln(n.out, line)
	}
	if n.say != nil {
		n.say(fmt.Sprintf("%s is done.", timerName))
	}
	if n.chime != nil {
		if err := n.chime.Ring(); err != nil {
			n.log.Warn("notifier: chime failed: %v", err)
			if n.out == nil && n.onAlert == nil && n.say == nil {
				return fmt.Errorf("timer %s: %w", timerName, err)
			}
		}
	}
	return nil
}

// Count returns how many alerts have fired.
func (n *AlertNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}
