// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package toast delivers user-facing notifications raised by mutation sets.

A failed mutation produces exactly one error toast carrying the error message.
Presentation is out of scope: a [Notifier] may log, queue for a UI, or print.
*/
package toast

import (
	stdctx "context"
	"log/slog"
	"sync"

	"github.com/taibuivan/civicdesk/internal/platform/ctxutil"
)

// Level classifies a notification.
type Level string

const (
	LevelError   Level = "error"
	LevelSuccess Level = "success"
)

// Notifier shows short messages to the user.
type Notifier interface {
	Error(context stdctx.Context, message string)
	Success(context stdctx.Context, message string)
}

// # Log Notifier

// LogNotifier writes toasts as structured log records.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a [LogNotifier]. A nil logger falls back to the context logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (notifier *LogNotifier) Error(context stdctx.Context, message string) {
	notifier.loggerFor(context).ErrorContext(context, "toast_error",
		slog.String("message", message),
		slog.String("operation", ctxutil.GetOperation(context)),
	)
}

func (notifier *LogNotifier) Success(context stdctx.Context, message string) {
	notifier.loggerFor(context).InfoContext(context, "toast_success",
		slog.String("message", message),
		slog.String("operation", ctxutil.GetOperation(context)),
	)
}

func (notifier *LogNotifier) loggerFor(context stdctx.Context) *slog.Logger {
	if notifier.logger != nil {
		return notifier.logger
	}
	return ctxutil.GetLogger(context)
}

// # Recorder

// Toast is one recorded notification.
type Toast struct {
	Level     Level
	Message   string
	Operation string
}

// Recorder keeps every toast in memory. UIs drain it; tests inspect it.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (recorder *Recorder) Error(context stdctx.Context, message string) {
	recorder.add(context, LevelError, message)
}

func (recorder *Recorder) Success(context stdctx.Context, message string) {
	recorder.add(context, LevelSuccess, message)
}

// Toasts returns a copy of everything recorded so far.
func (recorder *Recorder) Toasts() []Toast {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	return append([]Toast(nil), recorder.toasts...)
}

// Errors returns the messages of recorded error toasts, oldest first.
func (recorder *Recorder) Errors() []string {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	var messages []string
	for _, toast := range recorder.toasts {
		if toast.Level == LevelError {
			messages = append(messages, toast.Message)
		}
	}
	return messages
}

func (recorder *Recorder) add(context stdctx.Context, level Level, message string) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	recorder.toasts = append(recorder.toasts, Toast{
		Level:     level,
		Message:   message,
		Operation: ctxutil.GetOperation(context),
	})
}

// # Fan-out

// Multi forwards every toast to each notifier in order.
type Multi []Notifier

func (multi Multi) Error(context stdctx.Context, message string) {
	for _, notifier := range multi {
		notifier.Error(context, message)
	}
}

func (multi Multi) Success(context stdctx.Context, message string) {
	for _, notifier := range multi {
		notifier.Success(context, message)
	}
}

// Discard drops every toast.
type Discard struct{}

func (Discard) Error(stdctx.Context, string)   {}
func (Discard) Success(stdctx.Context, string) {}
