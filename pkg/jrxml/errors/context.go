package errors

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
)

// DefaultContextLines is the number of lines shown around an error.
const DefaultContextLines = 2

// ExtractContext reads the template file and extracts the lines around the
// given location for error display.
func ExtractContext(location component.Location, contextLines int) string {
	if !location.IsValid() {
		return ""
	}

	file, err := os.Open(location.File)
	if err != nil {
		return ""
	}
	defer file.Close()

	return extractContext(file, location, contextLines)
}

// ExtractContextFromBytes is ExtractContext for an in-memory template.
func ExtractContextFromBytes(data []byte, location component.Location, contextLines int) string {
	if location.Line <= 0 {
		return ""
	}
	return extractContext(bytes.NewReader(data), location, contextLines)
}

func extractContext(r io.Reader, location component.Location, contextLines int) string {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lines := make([]string, 0)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return ""
	}

	errorLine := location.Line - 1
	if errorLine >= len(lines) {
		return ""
	}
	startLine := max(errorLine-contextLines, 0)
	endLine := min(errorLine+contextLines, len(lines)-1)

	var sb strings.Builder
	maxLineNumWidth := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}
		sb.WriteString(fmt.Sprintf("%s %*d | %s\n", prefix, maxLineNumWidth, i+1, lines[i]))

		if i == errorLine && location.Column > 0 {
			padding := strings.Repeat(" ", location.Column-1)
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", maxLineNumWidth), padding))
		}
	}

	return sb.String()
}

// AddContextToError enriches err with the surrounding lines of its file.
func AddContextToError(err *Error) *Error {
	if err.Location.IsValid() && err.Context == "" {
		err.Context = ExtractContext(err.Location, DefaultContextLines)
	}
	return err
}

// AddContextFromBytes enriches err with the surrounding lines of data.
func AddContextFromBytes(err *Error, data []byte) *Error {
	if err.Context == "" {
		err.Context = ExtractContextFromBytes(data, err.Location, DefaultContextLines)
	}
	return err
}
