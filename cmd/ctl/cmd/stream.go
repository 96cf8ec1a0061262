package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/samblenny/webwavecam/pkg/logging"
	"github.com/samblenny/webwavecam/pkg/stream"
	"github.com/samblenny/webwavecam/pkg/wavecam"
	"github.com/spf13/cobra"
)

// NewStreamCmd creates the live frame loop command
func NewStreamCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "filter raw RGBA frames from stdin to stdout",
		Long:  "Reads fixed-size rawvideo RGBA frames from stdin (the ffmpeg -f rawvideo -pix_fmt rgba convention), filters each through the wavecam pipeline, and writes filtered frames to stdout. Frames arriving faster than they can be filtered are dropped so the output tracks the source.",
		RunE: func(cmd *cobra.Command, args []string) error {
			width, _ := cmd.Flags().GetInt("width")
			height, _ := cmd.Flags().GetInt("height")
			if width <= 0 || height <= 0 {
				return fmt.Errorf("--width and --height are required")
			}
			record, _ := cmd.Flags().GetString("record")
			cfg, err := configFromFlags(cmd)
			if err != nil {
				return err
			}
			return runStream(ctx, os.Stdin, os.Stdout, width, height, record, cfg)
		},
	}
	filterFlags(cmd)
	pf := cmd.PersistentFlags()
	pf.IntP("width", "W", 0, "frame width in pixels")
	pf.IntP("height", "H", 0, "frame height in pixels")
	pf.String("record", "", "also append filtered frames to this .wvc recording")
	return cmd
}

// runStream pumps frames from in to out until EOF or cancellation
func runStream(ctx context.Context, in io.Reader, out io.Writer, width, height int, record string, cfg wavecam.Config) error {
	if err := cfg.Validate(width, height); err != nil {
		return err
	}
	sess := stream.NewSession(width, height, cfg)
	ctx = logging.AppendCtx(ctx, sess.LogGroup())

	var rec *stream.Recorder
	if record != "" {
		f, err := os.Create(record)
		if err != nil {
			return fmt.Errorf("failed to create recording: %w", err)
		}
		defer f.Close()
		rec, err = stream.NewRecorder(f, sess)
		if err != nil {
			return err
		}
		defer rec.Close()
	}

	pump := stream.NewPump()
	errc := make(chan error, 1)
	go func() {
		defer pump.Close()
		fr := stream.NewFrameReader(in, width, height)
		for {
			// a fresh buffer per frame; the pump owns it until the
			// consumer takes it or drops it
			frame, err := fr.Next(nil)
			if err == io.EOF {
				errc <- nil
				return
			}
			if err != nil {
				errc <- err
				return
			}
			pump.Offer(frame)
			if ctx.Err() != nil {
				errc <- nil
				return
			}
		}
	}()

	fw := stream.NewFrameWriter(out, width, height)
	pipe := wavecam.NewPipeline()
	frames := 0
	start := time.Now()
	for {
		frame, ok := pump.Next(ctx)
		if !ok {
			break
		}
		if err := pipe.Process(frame, width, height, cfg); err != nil {
			return err
		}
		if err := fw.Write(frame); err != nil {
			return err
		}
		if rec != nil {
			if err := rec.WriteFrame(frame); err != nil {
				return err
			}
		}
		frames++
		if frames%300 == 0 {
			slog.InfoContext(ctx, "streaming",
				"frames", frames, "dropped", pump.Dropped())
		}
	}

	// the reader may still be blocked on stdin after a cancel, so only
	// collect its error when it already finished
	var readErr error
	select {
	case readErr = <-errc:
	default:
	}

	slog.InfoContext(ctx, "stream finished",
		"frames", frames, "dropped", pump.Dropped(),
		"elapsed", time.Since(start).Round(time.Millisecond).String())
	if rec != nil {
		slog.InfoContext(ctx, "recorded", "path", record, "frames", rec.Frames())
	}
	return readErr
}
