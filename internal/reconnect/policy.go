// Package reconnect decides whether and when a closed channel should be
// reopened.
package reconnect

import "time"

// Default policy values.
const (
	DefaultMaxAttempts = 5
	DefaultDelay       = 3 * time.Second
)

// Terminal close codes. A close with one of these codes is never
// retried: normal closure, unsupported data, policy violation, and the
// application-defined unauthorized code.
const (
	CodeNormalClosure   = 1000
	CodeUnsupportedData = 1003
	CodePolicyViolation = 1008
	CodeUnauthorized    = 4401
)

// CodeAbnormalClosure is the synthetic code for connections that died
// without a close frame (including failed handshakes). Always
// retryable.
const CodeAbnormalClosure = 1006

// Policy is a pure decision function over close codes and attempt
// counts. The zero value is not usable; call Default or fill both
// fields.
type Policy struct {
	// MaxAttempts caps consecutive unsuccessful reconnects.
	MaxAttempts int

	// Delay is the wait before each reconnect attempt. The delay is
	// deliberately fixed rather than exponential: the as-built contract
	// is a flat wait, and changing it is a product decision.
	Delay time.Duration
}

// Default returns the standard policy: 5 attempts, 3 s apart.
func Default() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		Delay:       DefaultDelay,
	}
}

// ShouldReconnect reports whether a close with the given code, after
// attempts consecutive failures, warrants another try.
func (p Policy) ShouldReconnect(code int, attempts int) bool {
	if IsTerminalCode(code) {
		return false
	}
	return attempts < p.MaxAttempts
}

// NextDelay returns the wait before the given attempt.
func (p Policy) NextDelay(attempts int) time.Duration {
	return p.Delay
}

// IsTerminalCode reports whether the close code rules out reconnecting.
func IsTerminalCode(code int) bool {
	switch code {
	case CodeNormalClosure, CodeUnsupportedData, CodePolicyViolation, CodeUnauthorized:
		return true
	}
	return false
}
