package commands

// MessagePrefix exports messagePrefix for testing.
var MessagePrefix = messagePrefix //nolint:gochecknoglobals // test export

// ShortSHA exports shortSHA for testing.
var ShortSHA = shortSHA //nolint:gochecknoglobals // test export
