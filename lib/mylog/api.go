package mylog

import (
	"context"
	"os"
	"strings"
)

type Severity string

const (
	SeverityDebug Severity = "DEBUG"
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

var New func(componentName string) Logger

//go:generate mockgen -source=api.go -package mylog -destination logger_mock.go Logger
type Logger interface {
	Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any)
}

var severityRank = map[Severity]int{
	SeverityDebug: 0,
	SeverityInfo:  1,
	SeverityWarn:  2,
	SeverityError: 3,
}

// minimumSeverity is read once from LOG_LEVEL; unknown values mean INFO.
var minimumSeverity = parseSeverity(os.Getenv("LOG_LEVEL"))

func parseSeverity(level string) Severity {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return SeverityDebug
	case "WARN", "WARNING":
		return SeverityWarn
	case "ERROR":
		return SeverityError
	default:
		return SeverityInfo
	}
}

func enabled(severity Severity) bool {
	return severityRank[severity] >= severityRank[minimumSeverity]
}
