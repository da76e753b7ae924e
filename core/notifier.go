package core

// Notifier shows short-lived messages to the user.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// NopNotifier discards every message.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Info(string)    {}
func (NopNotifier) Warn(string)    {}
func (NopNotifier) Error(string)   {}
