// Package crash reports panics to Sentry. Without Init every report is
// dropped by the hub and only logged.
package crash

import (
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
)

const flushTimeout = 5 * time.Second

// Init configures the global Sentry client. An empty dsn leaves reporting
// disabled.
func Init(dsn, release string) error {
	if dsn == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:     dsn,
		Release: release,
	}); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	log.Printf("[crash] reporting to sentry (release %s)", release)
	return nil
}

// Flush waits for queued reports.
func Flush() {
	sentry.Flush(flushTimeout)
}

// Guard runs f and reports a panic instead of propagating it. It returns
// true when f panicked.
func Guard(component string, tags map[string]string, f func()) (panicked bool) {
	defer func() {
		err := recover()
		if err == nil {
			return
		}
		panicked = true
		log.Printf("[%s] panic: %v", component, err)

		hub := sentry.CurrentHub().Clone()
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("component", component)
			for k, v := range tags {
				scope.SetTag(k, v)
			}
		})
		hub.Recover(err)
		hub.Flush(flushTimeout)
	}()

	f()
	return false
}
