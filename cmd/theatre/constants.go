package main

// Default limits for CLI commands.
const (
	DefaultHistoryLimit = 20
)

// Valid batch formats.
var validFormats = []string{"auto", "json", "csv"}
