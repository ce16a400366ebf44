package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/autobrr/go-dvdvideo/internal/config"
	"github.com/autobrr/go-dvdvideo/internal/dvdvideo"
)

const (
	exitOK    = 0
	exitError = 1
)

// Options mirrors the teacher's bespoke-flag-parsing Options struct
// (internal/cli/cli.go in the teacher), narrowed to this tool's knobs.
type Options struct {
	Output          string
	Title           int
	HasTitle        bool
	TitleMinSeconds float64
	LRUCapacity     int
	ConfigFile      string
}

// Run parses args (args[0] is the invoked program name) and dispatches to
// the list/stream/version/help commands, writing to stdout/stderr and
// returning a process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return exitError
	}
	program := programName(args[0])
	rest := args[1:]

	if len(rest) > 0 {
		switch strings.ToLower(rest[0]) {
		case "version":
			Version(stdout)
			return exitOK
		case "help":
			Help(program, stdout)
			return exitOK
		case "list":
			return runList(program, rest[1:], stdout, stderr)
		case "stream":
			return runStream(program, rest[1:], stdout, stderr)
		}
	}

	var opts Options
	var dir string
	for _, a := range rest {
		switch {
		case a == "--help" || a == "-h":
			Help(program, stdout)
			return exitOK
		case a == "--version":
			Version(stdout)
			return exitOK
		default:
			if name, value, ok := parseFlag(a); ok {
				applyFlag(&opts, name, value)
				continue
			}
			dir = a
		}
	}
	if dir == "" {
		return Usage(program, stdout)
	}
	return runListWith(program, dir, opts, stdout, stderr)
}

func parseFlag(arg string) (name, value string, ok bool) {
	if !strings.HasPrefix(arg, "--") {
		return "", "", false
	}
	body := strings.TrimPrefix(arg, "--")
	name, value, hasEq := strings.Cut(body, "=")
	return strings.ToLower(name), value, hasEq
}

func applyFlag(opts *Options, name, value string) {
	switch name {
	case "output":
		opts.Output = strings.ToUpper(value)
	case "title":
		if n, err := strconv.Atoi(value); err == nil {
			opts.Title = n
			opts.HasTitle = true
		}
	case "title-min-seconds":
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			opts.TitleMinSeconds = f
		}
	case "lru-capacity":
		if n, err := strconv.Atoi(value); err == nil {
			opts.LRUCapacity = n
		}
	case "config":
		opts.ConfigFile = value
	}
}

func loadConfig(opts Options) config.Config {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		cfg = config.Config{TitleMinSeconds: dvdvideo.DefaultTitleMinSeconds, LRUCapacity: dvdvideo.DefaultLRUCapacity}
	}
	if opts.TitleMinSeconds > 0 {
		cfg.TitleMinSeconds = opts.TitleMinSeconds
	}
	if opts.LRUCapacity > 0 {
		cfg.LRUCapacity = opts.LRUCapacity
	}
	return cfg
}

func runList(program string, args []string, stdout, stderr io.Writer) int {
	var opts Options
	var dir string
	for _, a := range args {
		if name, value, ok := parseFlag(a); ok {
			applyFlag(&opts, name, value)
			continue
		}
		dir = a
	}
	if dir == "" {
		return Usage(program, stdout)
	}
	return runListWith(program, dir, opts, stdout, stderr)
}

func runListWith(program, dir string, opts Options, stdout, stderr io.Writer) int {
	cfg := loadConfig(opts)
	_ = dvdvideo.InitFolderCache(cfg.LRUCapacity)
	log := dvdvideo.NewDefaultLogger()

	vdvd, err := dvdvideo.OpenVirtualDVD(dir, cfg.TitleMinSeconds, dvdvideo.NoSidecar{}, log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	entries, err := vdvd.GetFiles()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	if strings.EqualFold(opts.Output, "JSON") {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(entries)
		return exitOK
	}

	for _, e := range entries {
		fmt.Fprintf(stdout, "%s\t%s\n", e.Name, e.Title)
	}
	return exitOK
}

func runStream(program string, args []string, stdout, stderr io.Writer) int {
	var opts Options
	var dir string
	for _, a := range args {
		if name, value, ok := parseFlag(a); ok {
			applyFlag(&opts, name, value)
			continue
		}
		dir = a
	}
	if dir == "" || !opts.HasTitle {
		fmt.Fprintln(stderr, "stream requires a VIDEO_TS directory and --title=N")
		return exitError
	}

	cfg := loadConfig(opts)
	_ = dvdvideo.InitFolderCache(cfg.LRUCapacity)
	log := dvdvideo.NewDefaultLogger()

	folder, err := dvdvideo.OpenDVDFolder(dir, cfg.TitleMinSeconds, log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	var title *dvdvideo.Title
	if opts.Title == 0 {
		title, err = folder.MainTitle()
	} else {
		titles, terr := folder.Titles()
		err = terr
		if err == nil {
			for _, t := range titles {
				if t.Number == opts.Title {
					title = t
					break
				}
			}
			if title == nil {
				err = fmt.Errorf("no such title %d", opts.Title)
			}
		}
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	vts, err := folder.VTS(title.VTSNumber)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	pgc := vts.PGCByNumber(title.PGCNumber)
	if pgc == nil {
		fmt.Fprintln(stderr, fmt.Errorf("no such PGC %d", title.PGCNumber))
		return exitError
	}

	ts, err := dvdvideo.BuildTitleStream(vts, pgc, log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	defer ts.Close()

	if _, err := io.Copy(stdout, ts); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	return exitOK
}

func programName(arg0 string) string {
	name := filepath.Base(arg0)
	if runtime.GOOS == "windows" {
		ext := filepath.Ext(name)
		name = strings.TrimSuffix(name, ext)
	}
	return name
}
