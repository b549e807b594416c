package catalog

import "github.com/golang/glog"

// Logger is the logging collaborator shared by catalog implementations.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// glogLogger implements Logger using glog.
type glogLogger struct{}

func (glogLogger) Infof(format string, args ...any)  { glog.Infof(format, args...) }
func (glogLogger) Errorf(format string, args ...any) { glog.Errorf(format, args...) }

type nopLogger struct{}

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// NopLogger discards everything.
func NopLogger() Logger { return nopLogger{} }
