package parser

import (
	"regexp"
	"strings"
)

// Entry is one line of the panel's log, split for display.
type Entry struct {
	OriginalText string
	Time         string
	Tag          string // "apply", "cable", "poll", ... or empty
	Message      string
	IsError      bool
}

var (
	// Lines as written by the standard logger with LstdFlags:
	// 2026/10/18 21:04:05 [cable] hidden cable found and connected: CABLE Output (...)
	// 2026/10/18 21:04:05 plain message
	lineRegex = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}\s+(?P<Time>\d{2}:\d{2}:\d{2})\s+(?:\[(?P<Tag>[^\]]+)\]\s+)?(?P<Message>.+)$`)

	errorWords = []string{"error", "failed", "could not"}
)

// ParseLine parses a log line.
// Returns nil if the line is not a log record (e.g. a continuation line)
func ParseLine(line string) *Entry {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return nil
	}

	matches := lineRegex.FindStringSubmatch(line)
	if matches == nil {
		return nil
	}
	result := make(map[string]string)
	for i, name := range lineRegex.SubexpNames() {
		if i < len(matches) && name != "" {
			result[name] = matches[i]
		}
	}

	message := strings.TrimSpace(result["Message"])
	if message == "" {
		return nil
	}
	tag := result["Tag"]

	return &Entry{
		OriginalText: line,
		Time:         result["Time"],
		Tag:          tag,
		Message:      message,
		IsError:      tag == "error" || hasErrorWord(message),
	}
}

func hasErrorWord(s string) bool {
	lower := strings.ToLower(s)
	for _, w := range errorWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
