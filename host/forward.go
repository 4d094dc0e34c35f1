package host

import (
	"github.com/nmxmxh/inos_effects/utils"
)

// forward reads the value carried by a host event and hands it to fn. Host
// callbacks run outside any Go caller, so a read that fails or panics is
// logged and the event is dropped; a panicking fn is contained the same way.
func forward[T any](logger *utils.Logger, event string, read func() (T, error), fn func(T)) {
	var v T
	err := utils.Safely(func() error {
		var err error
		v, err = read()
		return err
	})
	if err != nil {
		logger.Warn("Dropped environment event with unreadable value",
			utils.String("event", event),
			utils.Err(err),
		)
		return
	}

	if err := utils.Safely(func() error { fn(v); return nil }); err != nil {
		logger.Warn("Environment listener panicked",
			utils.String("event", event),
			utils.Err(err),
		)
	}
}
