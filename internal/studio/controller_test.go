package studio

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/timmy/contentflow/internal/domain"
	"github.com/timmy/contentflow/internal/prompts"
)

type fakeFetcher struct {
	mu     sync.Mutex
	calls  int
	ideas  []domain.ContentIdea
	err    error
	block  chan struct{}
	called chan struct{}
	got    prompts.BuiltRequest
}

func (f *fakeFetcher) FetchIdeas(_ context.Context, _ domain.Platform, built prompts.BuiltRequest) ([]domain.ContentIdea, error) {
	f.mu.Lock()
	f.calls++
	f.got = built
	f.mu.Unlock()

	if f.called != nil {
		f.called <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	return f.ideas, f.err
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func videoIdeas(titles ...string) []domain.ContentIdea {
	ideas := make([]domain.ContentIdea, 0, len(titles))
	for _, title := range titles {
		ideas = append(ideas, domain.NewVideoIdea(domain.VideoIdea{
			Title: title, Description: "d", Keywords: []string{"k"}, Script: "s",
		}))
	}
	return ideas
}

func TestController_InitialState(t *testing.T) {
	c := NewController(&fakeFetcher{})
	state := c.State()

	if state.Platform != domain.PlatformYouTube {
		t.Errorf("expected youtube selected, got %q", state.Platform)
	}
	if !state.Idle() || state.CanSubmit() {
		t.Errorf("expected idle state with submit disabled, got %+v", state)
	}
}

func TestController_SubmitSuccess(t *testing.T) {
	fetcher := &fakeFetcher{ideas: videoIdeas("A", "B")}
	c := NewController(fetcher)

	state, err := c.Submit(context.Background(), domain.IdeaRequest{Topic: "  healthy baking  ", Duration: " 10 minutes "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Loading || state.Error != "" {
		t.Errorf("unexpected state %+v", state)
	}
	if len(state.Cards) != 2 || state.Cards[0].Heading != "A" {
		t.Fatalf("unexpected cards %+v", state.Cards)
	}
	for _, card := range state.Cards {
		if card.ScriptOpen {
			t.Error("fresh cards must have scripts closed")
		}
	}
	if state.Topic != "healthy baking" || state.Duration != "10 minutes" {
		t.Errorf("expected trimmed form values, got %q %q", state.Topic, state.Duration)
	}

	want := prompts.BuildRequest(domain.PlatformYouTube, "healthy baking", "10 minutes")
	if fetcher.got.Prompt != want.Prompt {
		t.Errorf("fetcher got unexpected prompt %q", fetcher.got.Prompt)
	}
}

func TestController_SubmitBlankTopic(t *testing.T) {
	fetcher := &fakeFetcher{ideas: videoIdeas("A")}
	c := NewController(fetcher)

	if _, err := c.Submit(context.Background(), domain.IdeaRequest{Topic: "first"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state, err := c.Submit(context.Background(), domain.IdeaRequest{Topic: "   "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Error != domain.MsgTopicRequired {
		t.Errorf("expected validation message, got %q", state.Error)
	}
	if len(state.Cards) != 1 {
		t.Errorf("existing cards should be kept, got %d", len(state.Cards))
	}
	if state.Loading {
		t.Error("validation failures never set loading")
	}
	if fetcher.callCount() != 1 {
		t.Errorf("blank topic must not call the service, calls=%d", fetcher.callCount())
	}
}

func TestController_SubmitErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"configuration", &domain.ConfigurationError{Message: "API_KEY environment variable not set."}, "API_KEY environment variable not set."},
		{"service", &domain.ServiceError{Provider: "gemini", StatusCode: 500, Err: errors.New("boom")}, domain.MsgServiceFailed},
		{"unknown", errors.New("something else"), domain.MsgUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{ideas: videoIdeas("A")}
			c := NewController(fetcher)
			if _, err := c.Submit(context.Background(), domain.IdeaRequest{Topic: "first"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			fetcher.ideas, fetcher.err = nil, tt.err
			state, err := c.Submit(context.Background(), domain.IdeaRequest{Topic: "second"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if state.Error != tt.want {
				t.Errorf("expected %q, got %q", tt.want, state.Error)
			}
			if len(state.Cards) != 0 {
				t.Errorf("a failed submission clears previous cards, got %d", len(state.Cards))
			}
			if state.Loading {
				t.Error("loading must be cleared after failure")
			}
		})
	}
}

func TestController_SubmitWhileLoading(t *testing.T) {
	fetcher := &fakeFetcher{
		ideas:  videoIdeas("A"),
		block:  make(chan struct{}),
		called: make(chan struct{}, 1),
	}
	c := NewController(fetcher)

	done := make(chan State)
	go func() {
		state, _ := c.Submit(context.Background(), domain.IdeaRequest{Topic: "first"})
		done <- state
	}()
	<-fetcher.called

	inFlight := c.State()
	if !inFlight.Loading || inFlight.Error != "" || len(inFlight.Cards) != 0 {
		t.Errorf("expected cleared loading state, got %+v", inFlight)
	}
	if inFlight.CanSubmit() {
		t.Error("submit must be disabled while loading")
	}

	state, err := c.Submit(context.Background(), domain.IdeaRequest{Topic: "second"})
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if state.Topic != "first" {
		t.Errorf("busy submit must not change state, got topic %q", state.Topic)
	}
	if _, err := c.SelectPlatform(domain.PlatformInstagram); !errors.Is(err, ErrBusy) {
		t.Errorf("platform switch while loading should be ignored, got %v", err)
	}

	close(fetcher.block)
	select {
	case final := <-done:
		if final.Loading || len(final.Cards) != 1 || final.Platform != domain.PlatformYouTube {
			t.Errorf("unexpected final state %+v", final)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("submit did not finish")
	}
	if fetcher.callCount() != 1 {
		t.Errorf("expected exactly one call, got %d", fetcher.callCount())
	}
}

func TestController_SelectPlatform(t *testing.T) {
	fetcher := &fakeFetcher{ideas: []domain.ContentIdea{
		domain.NewPhotoIdea(domain.PhotoIdea{Format: "Reel", Caption: "c", Hashtags: []string{"a"}, Script: "s"}),
	}}
	c := NewController(fetcher)

	state, err := c.SelectPlatform(domain.PlatformInstagram)
	if err != nil || state.Platform != domain.PlatformInstagram {
		t.Fatalf("unexpected result %+v, %v", state, err)
	}

	state, _ = c.Submit(context.Background(), domain.IdeaRequest{Topic: "street food"})
	if state.Platform != domain.PlatformInstagram {
		t.Errorf("an empty request platform keeps the selection, got %q", state.Platform)
	}
	if fetcher.got.Prompt != prompts.BuildRequest(domain.PlatformInstagram, "street food", "").Prompt {
		t.Error("expected the Instagram prompt")
	}
	if len(state.Cards) != 1 || state.Cards[0].Tags[0] != "#a" {
		t.Errorf("unexpected cards %+v", state.Cards)
	}
}

func TestController_ToggleScript(t *testing.T) {
	c := NewController(&fakeFetcher{ideas: videoIdeas("A", "B", "C")})
	if _, err := c.Submit(context.Background(), domain.IdeaRequest{Topic: "t"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := c.State()
	state, err := c.ToggleScript(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Cards[0].ScriptOpen || !state.Cards[1].ScriptOpen || state.Cards[2].ScriptOpen {
		t.Errorf("only card 1 should be open: %+v", state.Cards)
	}
	if before.Cards[1].ScriptOpen {
		t.Error("earlier snapshots must not change")
	}

	state, _ = c.ToggleScript(1)
	if state.Cards[1].ScriptOpen {
		t.Error("second toggle should close the script")
	}

	for _, index := range []int{-1, 3} {
		if _, err := c.ToggleScript(index); !errors.Is(err, ErrCardNotFound) {
			t.Errorf("index %d: expected ErrCardNotFound, got %v", index, err)
		}
	}
}

func TestController_NewSubmitResetsToggles(t *testing.T) {
	c := NewController(&fakeFetcher{ideas: videoIdeas("A", "B")})
	ctx := context.Background()

	if _, err := c.Submit(ctx, domain.IdeaRequest{Topic: "t"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.ToggleScript(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state, _ := c.Submit(ctx, domain.IdeaRequest{Topic: "t2"})
	for _, card := range state.Cards {
		if card.ScriptOpen {
			t.Error("a new result set starts with every script closed")
		}
	}
}
