package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"ffui/internal/config"
	"ffui/internal/encoding"
	"ffui/internal/history"
	"ffui/internal/media/ffprobe"
	"ffui/internal/services"
)

func newTranscodeCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var deviceFlag string

	cmd := &cobra.Command{
		Use:   "transcode <source>",
		Short: "Transcode a media file with ffmpeg",
		Long: `Transcode a media file with ffmpeg.

The output is written next to the source with the target container appended,
so movie.mkv transcoded to mp4 becomes movie.mkv.mp4. Press Ctrl-C to cancel
a running transcode; the partial output is discarded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			source, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve source path: %w", err)
			}
			info, err := os.Stat(source)
			if err != nil {
				return services.Wrap(services.ErrValidation, "transcode", "source file", "", err)
			}
			if info.IsDir() {
				return services.Wrap(services.ErrValidation, "transcode", "source file",
					fmt.Sprintf("%s is a directory", source), nil)
			}

			format := strings.ToLower(strings.TrimSpace(formatFlag))
			if format == "" {
				format = cfg.Transcode.DefaultFormat
			}
			if !encoding.ValidFormat(format) {
				return services.Wrap(services.ErrValidation, "transcode", "target format",
					fmt.Sprintf("unsupported container %q (choose one of: %s)",
						format, strings.Join(encoding.Formats(), ", ")), nil)
			}

			deviceValue := strings.TrimSpace(deviceFlag)
			if deviceValue == "" {
				deviceValue = cfg.Transcode.DefaultDevice
			}
			device, ok := encoding.ParseDevice(deviceValue)
			if !ok {
				return services.Wrap(services.ErrValidation, "transcode", "device",
					fmt.Sprintf("unknown device %q (choose one of: %s)",
						deviceValue, strings.Join(deviceNames(), ", ")), nil)
			}

			return runTranscode(cmd, ctx, encoding.Request{
				SourcePath:   source,
				TargetFormat: format,
				Device:       device,
			})
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Target container (default from config)")
	cmd.Flags().StringVarP(&deviceFlag, "device", "d", "", "Processing device: CPU, NVIDIA, Intel, or AMD")
	return cmd
}

func runTranscode(cmd *cobra.Command, ctx *commandContext, req encoding.Request) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, logPath, err := ctx.newRunLogger()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := []encoding.Option{
		encoding.WithBinary(cfg.FFmpegBinary()),
		encoding.WithProber(ffprobe.NewCLI(ffprobe.WithBinary(cfg.FFprobeBinary()))),
		encoding.WithLogger(logger),
	}
	if store, err := history.Open(cfg); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warn: session history disabled: %v\n", err)
	} else {
		defer store.Close()
		opts = append(opts, encoding.WithRecorder(store))
	}
	session := encoding.NewSession(opts...)

	runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	plan := encoding.BuildPlan(req)
	fmt.Fprintf(out, "Transcoding %s\n", req.SourcePath)
	fmt.Fprintf(out, "  codec:  %s (%s)\n", plan.VideoCodec, req.Device)
	fmt.Fprintf(out, "  output: %s\n", plan.OutputPath)

	// The session context is never cancelled; a signal only requests
	// cooperative cancellation, so an interrupted run always classifies as
	// cancelled rather than racing the process kill to a failure.
	if err := session.Start(context.WithoutCancel(cmd.Context()), req); err != nil {
		return err
	}
	go func() {
		<-runCtx.Done()
		session.Cancel()
	}()

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("encoding"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

poll:
	for {
		select {
		case <-ticker.C:
			_ = bar.Set(int(session.Snapshot().Percent))
		case <-session.Done():
			break poll
		}
	}
	_ = bar.Clear()

	snap := session.Snapshot()
	switch session.Status() {
	case encoding.StatusCompleted:
		fmt.Fprintf(out, "Completed: %s\n", plan.OutputPath)
		fmt.Fprintf(out, "Log: %s\n", logPath)
		return nil
	case encoding.StatusCancelled:
		return fmt.Errorf("transcode cancelled")
	default:
		reason := lastLogLine(snap.Log)
		if reason == "" {
			reason = "transcode failed"
		}
		return fmt.Errorf("%s (log: %s)", strings.Trim(reason, "= "), logPath)
	}
}

func deviceNames() []string {
	devices := encoding.Devices()
	names := make([]string, 0, len(devices))
	for _, device := range devices {
		names = append(names, string(device))
	}
	return names
}
