package cli

import (
	"fmt"
	"io"
)

func Help(program string, stdout io.Writer) {
	Version(stdout)
	fmt.Fprintf(stdout, "Usage: \"%s <command> [options] <VIDEO_TS-dir>\"\n", program)
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Commands:")
	fmt.Fprintln(stdout, "list                 List the synthetic title files on a DVD-Video tree")
	fmt.Fprintln(stdout, "stream               Write a title's linear MPEG program stream to stdout")
	fmt.Fprintln(stdout, "version              Print go-dvdvideo version information")
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Options:")
	fmt.Fprintln(stdout, "--help, -h")
	fmt.Fprintln(stdout, "                    Display this help and exit")
	fmt.Fprintln(stdout, "--version")
	fmt.Fprintln(stdout, "                    Display version information and exit")
	fmt.Fprintln(stdout, "--output=TEXT|JSON")
	fmt.Fprintln(stdout, "                    Select listing output format (default TEXT)")
	fmt.Fprintln(stdout, "--title=N")
	fmt.Fprintln(stdout, "                    Title number to stream (0 = main feature)")
	fmt.Fprintln(stdout, "--title-min-seconds=N")
	fmt.Fprintln(stdout, "                    Minimum playback length for a title to be listed (default 10)")
	fmt.Fprintln(stdout, "--lru-capacity=N")
	fmt.Fprintln(stdout, "                    Parsed VIDEO_TS folders kept warm in the process cache (default 20)")
	fmt.Fprintln(stdout, "--config=path")
	fmt.Fprintln(stdout, "                    Optional config file read via viper")
}

func HelpNothing(program string, stdout io.Writer) {
	fmt.Fprintf(stdout, "Usage: \"%s <command> [options] <VIDEO_TS-dir>\"\n", program)
	fmt.Fprintf(stdout, "\"%s --help\" for displaying more information\n", program)
}

func Usage(program string, stdout io.Writer) int {
	HelpNothing(program, stdout)
	return exitError
}
