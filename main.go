// bdrsync copies the contents of one block device onto another, writing only
// the blocks that differ.
//
// Usage:
//
//	bdrsync [OPTIONS] BLKDEV1 BLKDEV2
//
// The scan itself lives in package bdsync; this command opens and validates
// the devices, discovers their sizes and block sizes, and renders progress.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bdrsync/bdsync"
	"bdrsync/tui"
)

const (
	appName    = "bdrsync"
	appVersion = "0.1"
)

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
	if errors.Is(err, bdsync.ErrInterrupted) {
		os.Exit(130)
	}
	os.Exit(1)
}

func main() {
	cfg, err := loadConfig()
	must(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = newRootCmd(cfg).ExecuteContext(ctx)
	stop()
	must(err)
}

func newRootCmd(cfg Config) *cobra.Command {
	var showVersion bool
	envVerbose := cfg.Verbose

	cmd := &cobra.Command{
		Use:   appName + " [OPTIONS] BLKDEV1 BLKDEV2",
		Short: "Efficiently copy contents of BLKDEV1 to BLKDEV2",
		Long: "Efficiently copy contents of BLKDEV1 to BLKDEV2.\n\n" +
			"Both devices are read block by block and only the blocks of BLKDEV2 that\n" +
			"differ from BLKDEV1 are rewritten.",
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			cmd.SilenceUsage = true

			flags := cmd.Flags()
			if !flags.Changed("verbose") {
				cfg.Verbose = envVerbose
			}
			return run(cmd.Context(), cfg, flags.Changed("log-level"), args[0], args[1], cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.CountVarP(&cfg.Verbose, "verbose", "v", "explain what is being done (twice for debug logs)")
	flags.BoolVarP(&showVersion, "version", "V", false, "output version information and exit")
	flags.BoolVar(&cfg.UI, "ui", cfg.UI, "show a fullscreen block map while syncing")
	flags.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "compare only, never write to BLKDEV2")
	flags.BoolVar(&cfg.Force, "force", cfg.Force, "write to BLKDEV2 even if it is mounted")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")

	return cmd
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", appName, appVersion)
	fmt.Fprintln(w, "© 2009 Mikhail Gusarov <dottedmag@dottedmag.net>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "License GPLv2+: GNU GPL version 2 or later <http://gnu.org/licenses/gpl.html>")
	fmt.Fprintln(w, "This is free software: you are free to change and redistribute it.")
	fmt.Fprintln(w, "There is NO WARRANTY, to the extent permitted by law.")
}

func run(ctx context.Context, cfg Config, explicitLevel bool, srcPath, dstPath string, stderr io.Writer) error {
	// The fullscreen UI owns the terminal, so logs are held back until it closes.
	var held bytes.Buffer
	logOut := stderr
	if cfg.UI {
		logOut = &held
		defer func() { io.Copy(stderr, &held) }()
	}
	log, err := newLogger(logOut, cfg.logLevel(explicitLevel))
	if err != nil {
		return err
	}
	defer log.Sync()

	pair, err := openPair(srcPath, dstPath, cfg.DryRun)
	if err != nil {
		return err
	}
	defer pair.Close()

	if err := checkPair(pair.src, pair.dst); err != nil {
		return err
	}
	if !cfg.DryRun {
		if err := checkNotMounted(pair.dst); err != nil {
			if !cfg.Force {
				return err
			}
			log.Warn("writing to a mounted device", zap.Error(err))
		}
	}

	for _, d := range []*device{pair.src, pair.dst} {
		log.Debug("opened device",
			zap.String("path", d.path),
			zap.Int64("size", d.size),
			zap.Int("block_size", d.blockSize),
		)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var obs bdsync.Observer
	text := newLineProgress(stderr, cfg.Verbose > 0)
	obs = text
	if cfg.UI {
		ui, err := tui.New()
		if err != nil {
			return errors.Wrap(err, "ui init")
		}
		defer ui.Close()
		go func() {
			select {
			case <-ui.Stopped():
				cancel()
			case <-ctx.Done():
			}
		}()
		// the header line still reaches stderr once the screen is gone
		text = newLineProgress(&held, false)
		obs = fanout{text, newScreenProgress(ui, cfg.DryRun)}
	}

	report, err := bdsync.Sync(ctx, pair.source(), pair.target(), bdsync.Options{
		DryRun:   cfg.DryRun,
		Observer: obs,
		Logger:   log,
	})
	if err != nil {
		text.finish()
		return err
	}

	if !cfg.DryRun {
		if err := pair.dst.f.Sync(); err != nil {
			return errors.Wrapf(err, "%s: flush", dstPath)
		}
	}

	log.Info("sync complete",
		zap.Int64("blocks", report.Blocks()),
		zap.Int64("patched", report.Patched),
		zap.String("compared", humanize.IBytes(uint64(report.BytesCompared))),
		zap.String("written", humanize.IBytes(uint64(report.BytesWritten))),
		zap.Bool("dry_run", report.DryRun),
	)
	return nil
}
