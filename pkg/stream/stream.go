// Package stream provides the frame-loop glue around the wavecam
// filter: raw RGBA frame transport, a latest-frame-wins pump for live
// sources, session identity for log correlation, and compressed
// recordings of filter runs.
package stream

import (
	"errors"
	"fmt"
	"io"
)

// Common errors
var (
	ErrShortFrame   = errors.New("truncated frame")
	ErrBadRecording = errors.New("not a wavecam recording")
	ErrTooSmall     = errors.New("image too small for the requested levels")
)

// FrameReader delivers fixed-size raw RGBA frames from r, the shape
// tools like ffmpeg emit with `-f rawvideo -pix_fmt rgba`.
type FrameReader struct {
	r    io.Reader
	size int
}

func NewFrameReader(r io.Reader, width, height int) *FrameReader {
	return &FrameReader{r: r, size: width * height * 4}
}

// Size returns the byte length of one frame.
func (fr *FrameReader) Size() int { return fr.size }

// Next reads one frame, reusing buf when it has the capacity. io.EOF
// comes back clean only on a frame boundary; a partial frame is an
// ErrShortFrame.
func (fr *FrameReader) Next(buf []byte) ([]byte, error) {
	if cap(buf) < fr.size {
		buf = make([]byte, fr.size)
	}
	buf = buf[:fr.size]
	n, err := io.ReadFull(fr.r, buf)
	if err == io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("%w: %d of %d bytes", ErrShortFrame, n, fr.size)
	}
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// FrameWriter emits fixed-size raw RGBA frames to w.
type FrameWriter struct {
	w    io.Writer
	size int
}

func NewFrameWriter(w io.Writer, width, height int) *FrameWriter {
	return &FrameWriter{w: w, size: width * height * 4}
}

// Write emits one frame, rejecting a payload of the wrong size before
// anything reaches the underlying writer.
func (fw *FrameWriter) Write(frame []byte) error {
	if len(frame) != fw.size {
		return fmt.Errorf("%w: %d of %d bytes", ErrShortFrame, len(frame), fw.size)
	}
	_, err := fw.w.Write(frame)
	return err
}
