package services

import (
	"context"
	"fmt"
	"io"
	"sync"

	"concierge/internal/models/chat_models"
	"concierge/internal/models/plan_models"
	"concierge/pkg/hub"
	"concierge/pkg/utils"
)

type fakeTransport struct {
	startErr     error
	session      *fakeSession
	systemPrompt string
}

func (f *fakeTransport) StartChat(ctx context.Context, systemPrompt string) (utils.ChatSession, error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	f.systemPrompt = systemPrompt
	return f.session, nil
}

func (f *fakeTransport) Close() error { return nil }

// fakeReply is one scripted assistant reply: its fragments and, optionally, an error raised
// after they have been delivered.
type fakeReply struct {
	fragments []string
	err       error
	sendErr   error
}

type fakeSession struct {
	mu      sync.Mutex
	replies []fakeReply
	prompts []string
}

func (s *fakeSession) SendMessageStream(ctx context.Context, message string) (utils.FragmentStream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, message)
	if len(s.replies) == 0 {
		return &fakeStream{fragments: []string{"ok"}}, nil
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	if reply.sendErr != nil {
		return nil, reply.sendErr
	}
	return &fakeStream{fragments: reply.fragments, err: reply.err}, nil
}

func (s *fakeSession) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.prompts...)
}

type fakeStream struct {
	fragments []string
	err       error
	closed    bool
}

func (s *fakeStream) Next() (string, error) {
	if len(s.fragments) > 0 {
		f := s.fragments[0]
		s.fragments = s.fragments[1:]
		return f, nil
	}
	if s.err != nil {
		return "", s.err
	}
	return "", io.EOF
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type fakePhotos struct {
	mu      sync.Mutex
	calls   int
	queries []string
	counts  []int
	err     error
	release chan struct{}
	tracked []string
	enabled bool
}

func newFakePhotos() *fakePhotos {
	return &fakePhotos{enabled: true}
}

func (f *fakePhotos) SearchPhotos(ctx context.Context, query string, count int) ([]chat_models.ItineraryImage, error) {
	f.mu.Lock()
	f.calls++
	f.queries = append(f.queries, query)
	f.counts = append(f.counts, count)
	release := f.release
	err := f.err
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	if err != nil {
		return nil, err
	}
	images := make([]chat_models.ItineraryImage, count)
	for i := range images {
		images[i] = chat_models.ItineraryImage{
			URL:         fmt.Sprintf("img-%d", i),
			DownloadURL: fmt.Sprintf("dl-%d", i),
		}
	}
	return images, nil
}

func (f *fakePhotos) TrackDownload(ctx context.Context, downloadURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tracked = append(f.tracked, downloadURL)
	return nil
}

func (f *fakePhotos) Enabled() bool { return f.enabled }

func (f *fakePhotos) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []hub.Event
}

func (p *recordingPublisher) Publish(eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, hub.Event{Type: eventType, Data: data})
}

func (p *recordingPublisher) OfType(eventType string) []hub.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []hub.Event
	for _, e := range p.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// makePlan builds a plan whose days hold the given number of segments. Segment ids are d<day>-s<seg>.
func makePlan(counts ...int) *plan_models.Plan {
	p := &plan_models.Plan{
		Trip:        plan_models.Trip{Destinations: []string{"Lisbon"}},
		Concepts:    []plan_models.Concept{},
		Days:        []plan_models.Day{},
		Nudges:      []string{},
		NextActions: []string{},
		Upsells:     []plan_models.Upsell{},
	}
	for d, n := range counts {
		day := plan_models.Day{Date: fmt.Sprintf("2025-05-%02d", d+1), Segments: []plan_models.Segment{}}
		for s := 0; s < n; s++ {
			day.Segments = append(day.Segments, plan_models.Segment{
				ID:    fmt.Sprintf("d%d-s%d", d, s),
				Type:  plan_models.SegmentExperience,
				Title: fmt.Sprintf("Segment %d.%d", d, s),
			})
		}
		p.Days = append(p.Days, day)
	}
	return p
}

func floatPtr(v float64) *float64 { return &v }
