package publishers

import "github.com/samvad-hq/crypto-news-sdk/pkg/cryptonews"

// Logger is the same object-logging surface the SDK client accepts.
type Logger = cryptonews.Logger

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}
