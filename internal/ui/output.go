package ui

import (
	"fmt"
	"io"
	"os"
)

// Out receives everything the Print helpers write.
var Out io.Writer = os.Stdout

func PrintSuccess(msg string) {
	fmt.Fprintln(Out, SuccessBadge.Render("OK")+" "+msg)
}

func PrintInfo(msg string) {
	fmt.Fprintln(Out, MutedStyle.Render(msg))
}

func PrintWarning(msg string) {
	fmt.Fprintln(Out, WarningBadge.Render("WARN")+" "+msg)
}

func PrintError(msg string) {
	fmt.Fprintln(Out, ErrorBadge.Render("ERROR")+" "+msg)
}

func PrintErrorWithHint(msg, hint string) {
	PrintError(msg)
	fmt.Fprintln(Out, MutedStyle.Render("  "+hint))
}

func PrintStep(msg string) {
	fmt.Fprintln(Out, InfoBadge.Render("..")+" "+msg)
}

func PrintDone(msg string) {
	fmt.Fprintln(Out, HeaderStyle.Render(msg))
}
