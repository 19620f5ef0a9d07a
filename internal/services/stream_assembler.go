package services

import "strings"

// StreamAssembler accumulates reply fragments in arrival order and exposes the summary seen so far.
// The JSON half is only parsed by Finish.
type StreamAssembler struct {
	buf       strings.Builder
	fragments int
}

func NewStreamAssembler() *StreamAssembler {
	return &StreamAssembler{}
}

// Push appends one fragment and returns the live summary of everything received.
func (a *StreamAssembler) Push(fragment string) string {
	a.buf.WriteString(fragment)
	a.fragments++
	return LiveSummary(a.buf.String())
}

func (a *StreamAssembler) Text() string {
	return a.buf.String()
}

func (a *StreamAssembler) Fragments() int {
	return a.fragments
}

func (a *StreamAssembler) Finish() SplitResult {
	return SplitResponse(a.buf.String())
}
