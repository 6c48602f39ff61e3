package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	ff "github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/jtolio/shift/pkg/batch"
	"github.com/jtolio/shift/pkg/enc"
	"github.com/jtolio/shift/pkg/utils"
)

type shift struct {
	stdout, stderr io.Writer

	flagLogLevel  *string
	flagKey       *int
	flagChunkSize *int
	flagOutDir    *string
	flagAtomic    *bool

	// exitCode is the process status for commands that finish without
	// an error.
	exitCode int
}

func newCommand(stdout, stderr io.Writer) (*shift, *ffcli.Command) {
	s := &shift{stdout: stdout, stderr: stderr}

	sysFlags := s.flagSet("")
	sysFlags.String("config", defaultConfigFile(), "path to config file")
	s.flagLogLevel = sysFlags.String("log.level", "normal",
		"default log level. can be:\n\tdebug, normal, urgent, or none")
	s.flagKey = sysFlags.Int("enc.key", enc.DefaultKey,
		"shift added to every byte (mod 256)")
	s.flagChunkSize = sysFlags.Int("enc.chunk-size", enc.DefaultChunkSize,
		"bytes transformed per read/write")
	s.flagOutDir = sysFlags.String("out-dir", ".",
		"directory outputs are written to. the input's\n\tdirectory is never used")
	s.flagAtomic = sysFlags.Bool("atomic", false,
		"write outputs via a temp file and rename, so\n\tfailed files leave nothing behind")

	cmdEncrypt := s.processCommand(enc.Forward,
		"encrypt the specified files to <name>_enc.<ext>")
	cmdDecrypt := s.processCommand(enc.Inverse,
		"decrypt the specified files to <name>_dec.<ext>")
	cmdVerify := &ffcli.Command{
		Name:       "verify",
		ShortHelp:  "checks that <encrypted-file> is <plain-file> encrypted with the\n\tconfigured key",
		ShortUsage: fmt.Sprintf("%s [opts] verify <plain-file> <encrypted-file>", os.Args[0]),
		FlagSet:    s.flagSet("verify"),
		Exec:       s.Verify,
	}

	return s, &ffcli.Command{
		ShortHelp:   "shift applies a reversible byte shift to files",
		ShortUsage:  fmt.Sprintf("%s [opts] <encrypt|decrypt> [--] <file1> [<file2> ...]", os.Args[0]),
		Subcommands: []*ffcli.Command{cmdDecrypt, cmdEncrypt, cmdVerify},
		FlagSet:     sysFlags,
		Options: []ff.Option{
			ff.WithAllowMissingConfigFile(true),
			ff.WithConfigFileParser(ff.PlainParser),
			ff.WithConfigFileFlag("config"),
			ff.WithEnvVarPrefix("SHIFT"),
		},
		Exec: s.root,
	}
}

// flagSet returns a FlagSet that reports parse errors instead of exiting,
// so every argument error ends up as exit status 1.
func (s *shift) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(s.stderr)
	return fs
}

func defaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".shift", "shift.conf")
}

func help(ctx context.Context, args []string) error { return flag.ErrHelp }

func (s *shift) root(ctx context.Context, args []string) error {
	if len(args) > 0 {
		if _, err := enc.ParseDirection(args[0]); err != nil {
			fmt.Fprintf(s.stderr, "Error: %v.\n", err)
		}
	}
	return help(ctx, args)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line in args and returns the process exit
// status: 1 for argument or command errors, otherwise the command's
// exitCode.
func run(args []string, stdout, stderr io.Writer) int {
	s, cmdRoot := newCommand(stdout, stderr)
	err := func() error {
		err := cmdRoot.Parse(args)
		if err != nil {
			return err
		}
		logLevel, err := utils.ParseLogLevel(*s.flagLogLevel)
		if err != nil {
			return err
		}
		return cmdRoot.Run(
			utils.ContextWithLogger(context.Background(),
				utils.NewLogger(logLevel, stdout, stderr)))
	}()
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "error: %+v\n", err)
		}
		return 1
	}
	return s.exitCode
}

func (s *shift) getDriver(ctx context.Context) *batch.Driver {
	return batch.NewDriver(batch.Config{
		Codec:     enc.NewShiftCodec(*s.flagKey),
		ChunkSize: *s.flagChunkSize,
		OutputDir: *s.flagOutDir,
		Atomic:    *s.flagAtomic,
		Log:       utils.L(ctx),
	})
}

func (s *shift) processCommand(dir enc.Direction, shortHelp string) *ffcli.Command {
	return &ffcli.Command{
		Name:       dir.Mode(),
		ShortHelp:  shortHelp,
		ShortUsage: fmt.Sprintf("%s [opts] %s [--] <file1> [<file2> ...]", os.Args[0], dir.Mode()),
		FlagSet:    s.flagSet(dir.Mode()),
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return flag.ErrHelp
			}
			res := s.getDriver(ctx).Process(dir, args)
			if failed := len(res.Failed()); failed > 0 {
				utils.L(ctx).Debugf("%d of %d files failed", failed, len(res.Outcomes))
			}
			s.exitCode = res.ExitCode()
			return nil
		},
	}
}
