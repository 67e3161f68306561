package audit

import (
	logger "github.com/sirupsen/logrus"
)

// Hook is a logrus hook that copies every entry into the audit log.
type Hook struct {
	formatter *Formatter
	writer    *Writer
}

// NewHook creates a Hook appending to path on behalf of hookName.
func NewHook(path, hookName string) *Hook {
	return &Hook{
		formatter: &Formatter{HookName: hookName},
		writer:    NewWriter(path),
	}
}

// Levels implements logrus.Hook.
func (h *Hook) Levels() []logger.Level {
	return logger.AllLevels
}

// Fire implements logrus.Hook.
func (h *Hook) Fire(entry *logger.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	return h.writer.Append(line)
}
