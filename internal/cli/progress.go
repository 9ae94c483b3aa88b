package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// progressPrinter reports per-file scan progress on the console. The
// counter label is colorized only when the writer is a terminal.
type progressPrinter struct {
	writer  io.Writer
	label   *color.Color
	enabled bool
}

// newProgressPrinter builds a progress printer for the writer. quiet
// disables all progress output.
func newProgressPrinter(writer io.Writer, quiet bool) *progressPrinter {
	printer := &progressPrinter{writer: writer, enabled: !quiet}
	if outputFile, isFile := writer.(*os.File); isFile && isatty.IsTerminal(outputFile.Fd()) {
		printer.label = color.New(color.FgCyan)
	}
	return printer
}

// Print writes one progress line for the file at position index of total.
func (printer *progressPrinter) Print(index int, total int, fileName string) {
	if !printer.enabled {
		return
	}
	if printer.label != nil {
		printer.label.Fprintf(printer.writer, "Processing file %d/%d:", index, total)
		fmt.Fprintf(printer.writer, " %s\n", fileName)
		return
	}
	fmt.Fprintf(printer.writer, "Processing file %d/%d: %s\n", index, total, fileName)
}
