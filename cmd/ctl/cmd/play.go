package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/samblenny/webwavecam/pkg/stream"
	"github.com/spf13/cobra"
)

// NewPlayCmd creates the recording playback command
func NewPlayCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "replay a .wvc recording as raw RGBA frames on stdout",
		Long:  "Decompresses a recording written by the stream command and emits its frames as rawvideo RGBA on stdout, ready to pipe into ffmpeg or back into stream.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")
			if path == "" && len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("recording path is required. Use --file flag or provide as argument")
			}
			infoOnly, _ := cmd.Flags().GetBool("info")
			return runPlay(ctx, path, infoOnly)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("file", "f", "", ".wvc recording to replay")
	pf.Bool("info", false, "print the recording header and frame count instead of frames")
	return cmd
}

// runPlay walks the recording, either counting or emitting frames
func runPlay(ctx context.Context, path string, infoOnly bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open recording: %w", err)
	}
	defer f.Close()
	rd, err := stream.NewReader(f)
	if err != nil {
		return err
	}
	defer rd.Close()

	hdr := rd.Header()
	if infoOnly {
		fmt.Println("=== Recording ===")
		fmt.Printf("Session: %s\n", hdr.Session)
		fmt.Printf("Fingerprint: %s\n", hdr.Fingerprint)
		fmt.Printf("Size: %dx%d\n", hdr.Width, hdr.Height)
		fmt.Printf("Scheme: %s\n", hdr.Config.Scheme)
		fmt.Printf("Levels: %d\n", hdr.Config.Levels)
		fmt.Printf("Started: %s\n", hdr.Started.Format(time.RFC3339))
		frames := 0
		var buf []byte
		for {
			buf, err = rd.Next(buf)
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			frames++
		}
		fmt.Printf("Frames: %d\n", frames)
		return nil
	}

	fw := stream.NewFrameWriter(os.Stdout, hdr.Width, hdr.Height)
	frames := 0
	var buf []byte
	for ctx.Err() == nil {
		buf, err = rd.Next(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := fw.Write(buf); err != nil {
			return err
		}
		frames++
	}
	slog.InfoContext(ctx, "replayed", "path", path, "session", hdr.Session, "frames", frames)
	return nil
}
