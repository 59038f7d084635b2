package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/timmy/contentflow/internal/domain"
	"github.com/timmy/contentflow/internal/render"
	"github.com/timmy/contentflow/internal/studio"
)

func renderPage(t *testing.T, state studio.State) string {
	t.Helper()
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("Templates: %v", err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, PageTemplate, NewPage(state)); err != nil {
		t.Fatalf("execute: %v", err)
	}
	return buf.String()
}

func TestPage_Idle(t *testing.T) {
	html := renderPage(t, studio.State{Platform: domain.PlatformYouTube})

	if !strings.Contains(html, Placeholder) {
		t.Error("idle page should show the placeholder")
	}
	if !strings.Contains(html, `value="youtube" class="active"`) {
		t.Error("youtube should be the active toggle")
	}
	if !strings.Contains(html, `id="submit" type="submit" disabled`) {
		t.Error("submit should start disabled with a blank topic")
	}
	if strings.Contains(html, `autocomplete="off" disabled`) {
		t.Error("inputs are editable when not loading")
	}
}

func TestPage_Loading(t *testing.T) {
	html := renderPage(t, studio.State{Platform: domain.PlatformInstagram, Topic: "food", Loading: true})

	if strings.Contains(html, Placeholder) {
		t.Error("placeholder is hidden while loading")
	}
	if !strings.Contains(html, "Generating ideas...") {
		t.Error("expected loading indicator")
	}
	if strings.Count(html, `disabled>`) < 2 {
		t.Error("platform buttons should be disabled while loading")
	}
	for _, name := range []string{`name="topic"`, `name="duration"`} {
		start := strings.Index(html, name)
		if start < 0 {
			t.Fatalf("input %s not rendered", name)
		}
		tag := html[start:]
		tag = tag[:strings.Index(tag, ">")]
		if !strings.Contains(tag, "disabled") {
			t.Errorf("input %s should be disabled while loading", name)
		}
	}
}

func TestPage_ErrorAndCards(t *testing.T) {
	cards := render.Cards([]domain.ContentIdea{
		domain.NewPhotoIdea(domain.PhotoIdea{Format: "Reel", Caption: "Taste <this>", Hashtags: []string{"food"}, Script: "Line 1\nLine 2"}),
		domain.NewPhotoIdea(domain.PhotoIdea{Format: "Carousel", Caption: "c", Hashtags: []string{"a"}, Script: "hidden"}),
	}, domain.PlatformInstagram)
	cards[0] = cards[0].Toggle()

	html := renderPage(t, studio.State{Platform: domain.PlatformInstagram, Topic: "food", Cards: cards})

	for _, want := range []string{
		"Instagram Idea",
		`<span class="badge">Reel</span>`,
		"Taste &lt;this&gt;",
		"<li>#food</li>",
		"Hashtags",
		"<pre class=\"script\">Line 1\nLine 2</pre>",
		render.LabelHideScript,
		render.LabelShowScript,
		"animation-delay: 100ms",
		`action="/cards/1/toggle"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(html, "hidden</pre>") {
		t.Error("closed scripts must not be rendered")
	}
	if strings.Contains(html, Placeholder) {
		t.Error("placeholder is hidden when cards are shown")
	}

	errHTML := renderPage(t, studio.State{Platform: domain.PlatformYouTube, Error: domain.MsgServiceFailed})
	if !strings.Contains(errHTML, `role="alert">An error occurred while communicating with the AI. Please try again.</div>`) {
		t.Error("expected error banner")
	}
}
