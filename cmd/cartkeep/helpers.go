package main

import (
	"fmt"
	"io"

	"cartkeep/internal/progress"
)

// printerSink reports step progress as plain numbered lines.
func printerSink(out io.Writer) progress.Sink {
	return func(label string, done, total int) {
		fmt.Fprintf(out, "[%d/%d] %s\n", done, total, label)
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
