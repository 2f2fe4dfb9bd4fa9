// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hashicorp/go-zipcrack"
	"github.com/hashicorp/go-zipcrack/internal/potfile"
	"github.com/hashicorp/go-zipcrack/telemetry"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"
)

// CLI are the cli parameters for the zipcrack binary
type CLI struct {
	Zip             string           `short:"z" required:"" name:"zip" help:"Path to the encrypted zip archive." type:"existingfile"`
	File            string           `short:"f" required:"" name:"file" help:"Entry inside the archive that is verified."`
	Type            string           `short:"t" optional:"" help:"File type of the entry, detected from the entry name if empty. (${types})"`
	Wordlist        string           `short:"w" optional:"" help:"Path to the candidate wordlist, may be compressed. (\"-\" for STDIN, default if --builtin is not set)"`
	Builtin         bool             `short:"b" optional:"" help:"Test the words of the built-in word list."`
	Compression     string           `optional:"" help:"Force the compression of the wordlist. (${compressions}, none)"`
	Potfile         string           `optional:"" type:"path" help:"Database of recovered passwords. A stored password is tested first, new results are stored."`
	Strict          bool             `short:"s" optional:"" help:"Read the complete entry after a header match to verify its checksum."`
	MaxCandidates   int64            `optional:"" default:"-1" help:"Maximum candidates that are tested. (disable check: -1)"`
	MaxDuration     int64            `optional:"" default:"-1" help:"Maximum time that a run should take (in seconds). (disable check: -1)"`
	MaxWordlistSize int64            `optional:"" default:"-1" help:"Maximum size of the wordlist after decompression (in bytes). (disable check: -1)"`
	Prefetch        int              `optional:"" default:"0" help:"Number of candidates that are read ahead. (disable: 0)"`
	SkipEmpty       bool             `optional:"" help:"Skip empty lines of the wordlist instead of testing the empty password."`
	Metrics         bool             `short:"M" optional:"" default:"false" help:"Print telemetry data to log after the run."`
	MetricsFile     string           `optional:"" type:"path" help:"Write Prometheus metrics of the run to this file."`
	EventBus        string           `optional:"" help:"Publish telemetry data to this CloudWatch event bus. (\"default\" for the default bus)"`
	EventSource     string           `optional:"" default:"zipcrack" help:"Source of published CloudWatch events."`
	Trace           bool             `optional:"" help:"Print OpenTelemetry spans to STDERR."`
	Verbose         bool             `short:"v" optional:"" help:"Verbose logging."`
	Version         kong.VersionFlag `short:"V" optional:"" help:"Print release version information."`
}

// Run the entrypoint into zipcrack as a cli tool
func Run(version, commit, date string) {
	var cli CLI
	kong.Parse(&cli,
		kong.Description("Recover the password of a ZipCrypto encrypted zip archive entry"),
		kong.UsageOnError(),
		kong.Vars{
			"version":      fmt.Sprintf("%s (%s), commit %s, built at %s", filepath.Base(os.Args[0]), version, commit, date),
			"types":        strings.Join(zipcrack.Identifiers(), ", "),
			"compressions": strings.Join(zipcrack.Compressions(), ", "),
		},
	)

	os.Exit(execute(context.Background(), &cli, version, os.Stdin, os.Stdout, os.Stderr))
}

// execute performs a run with the parsed cli parameters and returns the exit code.
func execute(ctx context.Context, cli *CLI, version string, stdin io.Reader, stdout, stderr io.Writer) int {

	// Check for verbose output
	logLevel := slog.LevelWarn
	if cli.Metrics {
		logLevel = slog.LevelInfo
	}
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}

	// setup logger
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	password, err := crack(ctx, cli, version, logger, stdin, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Found it: %s\n", password)
	return 0
}

// crack resolves the signature, opens the archive and the candidate sources and
// runs the verification.
func crack(ctx context.Context, cli *CLI, version string, logger *slog.Logger, stdin io.Reader, stderr io.Writer) (string, error) {
	sig, err := zipcrack.Resolve(cli.Type, cli.File)
	if err != nil {
		return "", errors.Wrap(err, "cannot determine file type")
	}

	archive, err := zipcrack.OpenArchive(cli.Zip)
	if err != nil {
		return "", err
	}
	defer archive.Close()

	encrypted, err := archive.IsEncrypted(cli.File)
	if err != nil {
		return "", err
	}
	if !encrypted {
		logger.Warn("entry is not encrypted, any candidate will match", "entry", cli.File)
	}

	// setup tracing
	if cli.Trace {
		shutdown, err := telemetry.InitTracer(stderr, version)
		if err != nil {
			return "", errors.Wrap(err, "cannot initialize tracing")
		}
		defer shutdown(context.Background())
	}

	// setup telemetry hooks
	hooks := []zipcrack.TelemetryHook{func(ctx context.Context, td *zipcrack.TelemetryData) {
		if cli.Metrics {
			logger.Info("verification finished", "telemetry", td)
		}
	}}
	if len(cli.MetricsFile) > 0 {
		reg := prometheus.NewRegistry()
		collector, err := telemetry.NewPrometheusCollector(reg)
		if err != nil {
			return "", errors.Wrap(err, "cannot register metrics")
		}
		hooks = append(hooks, collector.Hook)
		defer func() {
			if err := prometheus.WriteToTextfile(cli.MetricsFile, reg); err != nil {
				logger.Error("cannot write metrics", "file", cli.MetricsFile, "error", err)
			}
		}()
	}
	if len(cli.EventBus) > 0 {
		client, err := telemetry.NewCloudWatchClient(ctx)
		if err != nil {
			return "", err
		}
		bus := cli.EventBus
		if bus == "default" {
			bus = ""
		}
		hooks = append(hooks, telemetry.NewCloudWatchHook(client, cli.EventSource, bus, logger))
	}

	// process cli params
	cfg := zipcrack.NewConfig(
		zipcrack.WithLogger(logger),
		zipcrack.WithMaxCandidates(cli.MaxCandidates),
		zipcrack.WithMaxWordlistSize(cli.MaxWordlistSize),
		zipcrack.WithProgressInterval(progressInterval),
		zipcrack.WithSkipEmpty(cli.SkipEmpty),
		zipcrack.WithStrict(cli.Strict),
		zipcrack.WithTelemetryHook(zipcrack.ComposeTelemetryHooks(hooks...)),
		zipcrack.WithWordlistCompression(cli.Compression),
	)

	// collect candidate sources
	var sources []zipcrack.Candidates
	var pot *potfile.Potfile
	var digest string
	if len(cli.Potfile) > 0 {
		if pot, err = potfile.Open(cli.Potfile); err != nil {
			return "", err
		}
		defer pot.Close()
		if digest, err = potfile.Digest(cli.Zip); err != nil {
			return "", err
		}
		stored, ok, err := pot.Lookup(digest, cli.File)
		if err != nil {
			return "", err
		}
		if ok {
			logger.Info("testing password from potfile first", "potfile", cli.Potfile)
			sources = append(sources, zipcrack.NewSliceCandidates(stored))
		}
	}

	if len(cli.Wordlist) > 0 || !cli.Builtin {
		wl, err := openWordlist(cli.Wordlist, stdin, cfg, logger)
		if err != nil {
			return "", err
		}
		defer wl.Close()
		sources = append(sources, wl)
	}
	if cli.Builtin {
		sources = append(sources, zipcrack.NewBuiltinCandidates())
	}

	candidates := zipcrack.ChainCandidates(sources...)
	if cli.Prefetch > 0 {
		prefetch := zipcrack.NewPrefetchCandidates(ctx, candidates, cli.Prefetch)
		defer prefetch.Close()
		candidates = prefetch
	}

	if cli.MaxDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second*time.Duration(cli.MaxDuration))
		defer cancel()
	}

	password, err := zipcrack.Verify(ctx, archive, cli.File, sig, candidates, cfg)
	if err != nil {
		return "", errors.Wrap(err, "error during verification")
	}

	if pot != nil {
		if err := pot.Store(digest, cli.File, sig.Type().String(), password); err != nil {
			logger.Error("cannot update potfile", "error", err)
		}
	}
	return password, nil
}

// progressInterval is the number of candidates between progress log lines in verbose mode.
const progressInterval = 100000

// openWordlist opens the wordlist at path, an empty path or "-" reads stdin.
func openWordlist(path string, stdin io.Reader, cfg *zipcrack.Config, logger *slog.Logger) (*zipcrack.Wordlist, error) {
	if len(path) > 0 && path != zipcrack.Stdin {
		return zipcrack.OpenWordlist(path, cfg)
	}

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		logger.Warn("reading candidates from terminal, one per line, end with Ctrl-D")
	}
	return zipcrack.NewWordlist(stdin, "", cfg)
}
