package common

import "github.com/nuclio/logger"

// DebugWith emits a structured debug record if `log` is non-nil. Codecs accept
// a nil logger to mean "be quiet".
func DebugWith(log logger.Logger, message string, vars ...interface{}) {
	if log != nil {
		log.DebugWith(message, vars...)
	}
}

// InfoWith is the informational counterpart of [DebugWith].
func InfoWith(log logger.Logger, message string, vars ...interface{}) {
	if log != nil {
		log.InfoWith(message, vars...)
	}
}
