package service

import (
	"io"
	"os"

	pb "gopkg.in/cheggaaa/pb.v1"
)

// ProgressReporter creates progress indicators for long traversals.
type ProgressReporter interface {
	Start(label string, total int) Progress
}

// Progress is a single running indicator.
type Progress interface {
	Set(current int)
	Increment()
	Finish()
}

// BarProgress renders textual progress bars.
type BarProgress struct {
	Output io.Writer
}

// NewBarProgress creates a bar reporter writing to stdout.
func NewBarProgress() *BarProgress {
	return &BarProgress{Output: os.Stdout}
}

// Start begins a new bar.
func (p *BarProgress) Start(label string, total int) Progress {
	bar := pb.New(total).Prefix(label + " ")
	bar.Output = p.Output
	bar.ShowSpeed = false
	bar.ShowTimeLeft = true
	bar.SetMaxWidth(100)
	return &barHandle{bar: bar.Start()}
}

type barHandle struct {
	bar *pb.ProgressBar
}

func (h *barHandle) Set(current int) { h.bar.Set(current) }
func (h *barHandle) Increment()      { h.bar.Increment() }
func (h *barHandle) Finish()         { h.bar.Finish() }

// NoProgress discards progress updates.
type NoProgress struct{}

// Start returns an indicator that does nothing.
func (NoProgress) Start(string, int) Progress { return noProgress{} }

type noProgress struct{}

func (noProgress) Set(int)    {}
func (noProgress) Increment() {}
func (noProgress) Finish()    {}
