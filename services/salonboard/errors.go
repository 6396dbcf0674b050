package salonboard

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var AuthenticationFailed = fmt.Errorf("failed to authenticate against the portal")
var CaptchaRequired = fmt.Errorf("portal presented a captcha but no solver is configured")

// NavigationTimeout marks a wait that expired before the portal
// produced the expected screen. Callers may retry; a structurally
// missing element is reported as a plain error instead and is fatal
// for the run.
type NavigationTimeout struct {
	Screen string
	Err    error
}

func (e NavigationTimeout) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("navigation timed out on %s", e.Screen)
	}
	return fmt.Sprintf("navigation timed out on %s: %s", e.Screen, e.Err)
}

func (e NavigationTimeout) Unwrap() error { return e.Err }

func IsRetryable(err error) bool {
	var nt NavigationTimeout
	return errors.As(err, &nt)
}

// wrapFetchError classifies a transport error: timeouts become
// retryable NavigationTimeout, everything else passes through.
func wrapFetchError(screen string, err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NavigationTimeout{Screen: screen, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NavigationTimeout{Screen: screen, Err: err}
	}
	return err
}

type StaffNotFound struct {
	Name       string
	Closest    string
	Similarity float64
}

func (e StaffNotFound) Error() string {
	if e.Closest == "" {
		return fmt.Sprintf("no staff member on the portal matches %q", e.Name)
	}
	return fmt.Sprintf(
		"no staff member on the portal matches %q (closest: %q, similarity %.2f)",
		e.Name, e.Closest, e.Similarity,
	)
}
