package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autobrr/go-dvdvideo/internal/cli"
)

var version = "dev"

const helpBanner = "" +
	"                                                                                \n" +
	"██████╗ ██╗   ██╗██████╗       ██╗   ██╗██╗██████╗ ███████╗ ██████╗ \n" +
	"██╔══██╗██║   ██║██╔══██╗      ██║   ██║██║██╔══██╗██╔════╝██╔═══██╗\n" +
	"██║  ██║██║   ██║██║  ██║█████╗██║   ██║██║██║  ██║█████╗  ██║   ██║\n" +
	"██║  ██║╚██╗ ██╔╝██║  ██║╚════╝╚██╗ ██╔╝██║██║  ██║██╔══╝  ██║   ██║\n" +
	"██████╔╝ ╚████╔╝ ██████╔╝       ╚████╔╝ ██║██████╔╝███████╗╚██████╔╝\n" +
	"╚═════╝   ╚═══╝  ╚═════╝         ╚═══╝  ╚═╝╚═════╝ ╚══════╝ ╚═════╝ "

const helpTemplate = helpBanner + `

{{with or .Long .Short}}{{. | trimTrailingWhitespaces}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}`

var rootCmd = &cobra.Command{
	Use:                "dvdvideo <command> [options] <VIDEO_TS-dir>",
	Short:              "List and stream titles out of a DVD-Video VIDEO_TS tree.",
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		os.Exit(cli.Run(append([]string{cmd.Name()}, args...), cmd.OutOrStdout(), cmd.ErrOrStderr()))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print go-dvdvideo version information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cli.Version(cmd.OutOrStdout())
		return nil
	},
	DisableFlagsInUseLine: true,
}

func init() {
	resolvedVersion := resolveVersion()
	cli.SetVersion(resolvedVersion)
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
	rootCmd.SetHelpTemplate(helpTemplate)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func resolveVersion() string {
	if version != "" && version != "dev" {
		return normalizeVersion(version)
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return normalizeVersion(info.Main.Version)
		}
	}
	return "dev"
}

func normalizeVersion(value string) string {
	return strings.TrimPrefix(value, "v")
}
