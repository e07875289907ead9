package main

import (
	"fmt"
	"io"

	"github.com/ledgerline/ledgerline-client/internal/alert"
)

// renderAlerts prints pending notifications one per line, tagged with their
// severity, e.g. "[success] Category added.".
func renderAlerts(w io.Writer, alerts []alert.Alert) {
	for _, a := range alerts {
		fmt.Fprintf(w, "[%s] %s\n", a.Severity, a.Message)
	}
}
