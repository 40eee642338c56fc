package services

import (
	"fmt"

	"gocv.io/x/gocv"
)

// FrameSource iterates a video file frame by frame. It wraps a gocv
// VideoCapture; the caller must Close it to release the underlying decoder.
type FrameSource struct {
	capture *gocv.VideoCapture
	path    string
}

// OpenFrameSource opens a video file for sequential frame reads.
func OpenFrameSource(path string) (*FrameSource, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open video %s: %w", path, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("cannot open video %s", path)
	}
	return &FrameSource{capture: capture, path: path}, nil
}

// FrameCount reports the total frame count of the clip, floored at 1 so
// progress division is always safe.
func (f *FrameSource) FrameCount() int {
	count := int(f.capture.Get(gocv.VideoCaptureFrameCount))
	if count < 1 {
		count = 1
	}
	return count
}

// Read fetches the next frame into img. It returns false at end of stream.
// The Mat contents are only valid until the next Read.
func (f *FrameSource) Read(img *gocv.Mat) bool {
	if !f.capture.Read(img) {
		return false
	}
	return !img.Empty()
}

// Close releases the video decoder.
func (f *FrameSource) Close() error {
	return f.capture.Close()
}
