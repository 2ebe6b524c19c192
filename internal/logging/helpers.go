package logging

import "log/slog"

// The helpers below drop the record when logger is nil, so components built
// without a logger stay quiet.

func Debug(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

func Info(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

func Warn(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error logs msg at error level with err under FieldError. A nil err is omitted.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if logger == nil {
		return
	}
	if err != nil {
		args = append(args, slog.Any(FieldError, err))
	}
	logger.Error(msg, args...)
}
