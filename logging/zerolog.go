package logging

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ZerologAdapter wraps a zerolog.Logger to implement the Logger interface.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates a new ZerologAdapter.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// Debug implements Logger.
func (z *ZerologAdapter) Debug(msg string, attrs ...any) {
	emit(z.logger.Debug(), msg, attrs)
}

// Info implements Logger.
func (z *ZerologAdapter) Info(msg string, attrs ...any) {
	emit(z.logger.Info(), msg, attrs)
}

// Warn implements Logger.
func (z *ZerologAdapter) Warn(msg string, attrs ...any) {
	emit(z.logger.Warn(), msg, attrs)
}

// Error implements Logger.
func (z *ZerologAdapter) Error(msg string, attrs ...any) {
	emit(z.logger.Error(), msg, attrs)
}

// With implements Logger.
func (z *ZerologAdapter) With(attrs ...any) Logger {
	ctx := z.logger.With()
	for i := 0; i+1 < len(attrs); i += 2 {
		ctx = ctx.Interface(fmt.Sprint(attrs[i]), attrs[i+1])
	}
	return &ZerologAdapter{logger: ctx.Logger()}
}

// emit adds attrs as key-value fields and sends the event.
// A trailing key without a value is logged under "!BADKEY", as slog does.
func emit(e *zerolog.Event, msg string, attrs []any) {
	if e == nil {
		// level disabled
		return
	}
	for i := 0; i < len(attrs); i += 2 {
		if i+1 == len(attrs) {
			e = e.Interface("!BADKEY", attrs[i])
			break
		}
		key := fmt.Sprint(attrs[i])
		switch v := attrs[i+1].(type) {
		case error:
			e = e.AnErr(key, v)
		case string:
			e = e.Str(key, v)
		case int:
			e = e.Int(key, v)
		case bool:
			e = e.Bool(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	e.Msg(msg)
}

var _ Logger = (*ZerologAdapter)(nil)
