package main

import (
	"fmt"
	"io"

	"github.com/jwalton/go-supportscolor"
)

var (
	green = "\033[32m"
	red   = "\033[31m"
	cyan  = "\033[36m"
	reset = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, red, cyan, reset = "", "", "", ""
	}
}

func printOK(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s[OK]%s ", green, reset)
	fmt.Fprintf(w, format, args...)
	fmt.Fprintln(w)
}

func printFail(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s[FAIL]%s ", red, reset)
	fmt.Fprintf(w, format, args...)
	fmt.Fprintln(w)
}
