package audit

import (
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"
)

// TimestampFormat is the audit line timestamp layout.
const TimestampFormat = "2006-01-02 15:04:05"

// continuationMarker separates the prefix from the text of the second and
// later lines of a multi-line message.
const continuationMarker = "  | "

// Formatter renders entries as "[timestamp] [LEVEL] [hook] message". Every
// line of a multi-line message carries the prefix, continuation lines are
// marked with "  | ".
type Formatter struct {
	HookName string
}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logger.Entry) ([]byte, error) {
	prefix := fmt.Sprintf("[%s] [%s] [%s] ",
		entry.Time.Format(TimestampFormat), LevelName(entry.Level), f.HookName)
	message := strings.TrimRight(entry.Message, "\r\n")

	var b strings.Builder
	for i, line := range strings.Split(message, "\n") {
		b.WriteString(prefix)
		if i > 0 {
			b.WriteString(continuationMarker)
		}
		b.WriteString(strings.TrimRight(line, "\r"))
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

// LevelName maps logrus levels onto the audit vocabulary.
func LevelName(level logger.Level) string {
	switch level {
	case logger.TraceLevel:
		return "TRACE"
	case logger.DebugLevel:
		return "DEBUG"
	case logger.InfoLevel:
		return "INFO"
	case logger.WarnLevel:
		return "WARNING"
	default:
		return "ERROR"
	}
}
