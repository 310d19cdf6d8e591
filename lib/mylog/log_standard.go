package mylog

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newStandardLogger
	}
}

type standardLogger struct {
	componentName string
	out           io.Writer
}

func newStandardLogger(componentName string) Logger {
	return standardLogger{
		componentName: componentName,
		out:           os.Stderr,
	}
}

func (l standardLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	if !enabled(severity) {
		return
	}
	if traceLabel == "" {
		traceLabel = "-"
	}
	fmt.Fprintf(l.out, "%s %-5s %s [%s] %s\n", time.Now().Format("15:04:05.000"), severity, l.componentName, traceLabel, fmt.Sprintf(format, a...))
}
