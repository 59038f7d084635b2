// Package studio holds the per-session idea workflow: the current form
// values, the rendered cards and the single in-flight request.
package studio

import (
	"context"
	"errors"
	"sync"

	"github.com/timmy/contentflow/internal/domain"
	"github.com/timmy/contentflow/internal/logger"
	"github.com/timmy/contentflow/internal/prompts"
	"github.com/timmy/contentflow/internal/render"
)

var (
	// ErrBusy is returned when a request is already in flight.
	ErrBusy = errors.New("a request is already in progress")
	// ErrCardNotFound is returned by ToggleScript for an index with no card.
	ErrCardNotFound = errors.New("card not found")
)

// IdeaFetcher performs the completion call for a built request.
type IdeaFetcher interface {
	FetchIdeas(ctx context.Context, platform domain.Platform, built prompts.BuiltRequest) ([]domain.ContentIdea, error)
}

// State is a snapshot of one session. Transitions replace it wholesale.
type State struct {
	Platform domain.Platform
	Topic    string
	Duration string
	Cards    []render.Card
	Error    string
	Loading  bool
}

// HasCards reports whether any idea is on display.
func (s State) HasCards() bool {
	return len(s.Cards) > 0
}

// Idle reports whether the page should show the placeholder.
func (s State) Idle() bool {
	return !s.Loading && s.Error == "" && len(s.Cards) == 0
}

// CanSubmit mirrors the submit button: enabled only when not loading and
// the topic is not blank.
func (s State) CanSubmit() bool {
	return !s.Loading && (domain.IdeaRequest{Topic: s.Topic}).Validate() == nil
}

func (s State) clone() State {
	if s.Cards != nil {
		s.Cards = append([]render.Card(nil), s.Cards...)
	}
	return s
}

// Controller serializes the transitions of one session.
type Controller struct {
	fetcher IdeaFetcher

	mu    sync.Mutex
	state State
}

// NewController creates a controller with YouTube selected.
func NewController(fetcher IdeaFetcher) *Controller {
	return &Controller{
		fetcher: fetcher,
		state:   State{Platform: domain.PlatformYouTube},
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Loading reports whether a request is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Loading
}

// Submit runs one generation for req. An empty req.Platform keeps the
// current selection. While another request is in flight it returns the
// current state and ErrBusy without calling the fetcher. All other failures
// end up in State.Error.
func (c *Controller) Submit(ctx context.Context, req domain.IdeaRequest) (result State, err error) {
	req = req.Normalize()

	c.mu.Lock()
	if c.state.Loading {
		current := c.state.clone()
		c.mu.Unlock()
		return current, ErrBusy
	}
	if req.Platform == "" {
		req.Platform = c.state.Platform
	}

	if invalid := req.Validate(); invalid != nil {
		c.state = State{
			Platform: req.Platform,
			Topic:    req.Topic,
			Duration: req.Duration,
			Cards:    c.state.Cards,
			Error:    domain.UserMessage(invalid),
		}
		result = c.state.clone()
		c.mu.Unlock()
		return result, nil
	}

	c.state = State{
		Platform: req.Platform,
		Topic:    req.Topic,
		Duration: req.Duration,
		Loading:  true,
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		next := c.state
		next.Loading = false
		c.state = next
		result = c.state.clone()
		c.mu.Unlock()
	}()

	built := prompts.BuildRequest(req.Platform, req.Topic, req.Duration)
	ideas, fetchErr := c.fetcher.FetchIdeas(ctx, req.Platform, built)

	c.mu.Lock()
	next := c.state
	if fetchErr != nil {
		logger.CtxWarn(ctx, "Generation failed for session: %v", fetchErr)
		next.Cards = nil
		next.Error = domain.UserMessage(fetchErr)
	} else {
		next.Cards = render.Cards(ideas, req.Platform)
		next.Error = ""
	}
	c.state = next
	c.mu.Unlock()

	// result is filled in by the deferred finalizer.
	return result, nil
}

// SelectPlatform switches the toggle. It has no effect while loading.
func (c *Controller) SelectPlatform(p domain.Platform) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Loading {
		return c.state.clone(), ErrBusy
	}
	next := c.state.clone()
	next.Platform = p
	c.state = next
	return c.state.clone(), nil
}

// ToggleScript flips the script section of the card at index only.
func (c *Controller) ToggleScript(index int) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.state.Cards) {
		return c.state.clone(), ErrCardNotFound
	}
	next := c.state.clone()
	next.Cards[index] = next.Cards[index].Toggle()
	c.state = next
	return c.state.clone(), nil
}
