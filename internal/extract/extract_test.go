package extract

import (
	"strings"
	"testing"

	"github.com/hyperifyio/gosummarize/internal/summarize"
)

const page = `<!doctype html>
<html>
  <head>
    <title>Ant - Wikipedia</title>
    <meta property="og:title" content="Ant">
    <meta property="og:description" content="Ants are eusocial insects.">
    <meta property="og:url" content="https://en.wikipedia.org/wiki/Ant">
    <style>body { color: red; }</style>
  </head>
  <body>
    <script>var tracking = "should not appear";</script>
    <p>By <span class="author">  Jane
        Q.   Writer </span></p>
    <p>Ants are eusocial insects of the family Formicidae.
       They evolved from vespoid wasp ancestors.</p>
    <noscript>Enable JavaScript</noscript>
    <div>First block<br>after break</div>
  </body>
</html>`

func TestFromHTML_Metadata(t *testing.T) {
	doc, err := FromHTML([]byte(page))
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if doc.Title != "Ant" {
		t.Fatalf("title = %q", doc.Title)
	}
	if doc.Author != "Jane Q. Writer" {
		t.Fatalf("author = %q", doc.Author)
	}
	if doc.Description != "Ants are eusocial insects." {
		t.Fatalf("description = %q", doc.Description)
	}
	if doc.URL != "https://en.wikipedia.org/wiki/Ant" {
		t.Fatalf("url = %q", doc.URL)
	}
}

func TestFromHTML_TitleFallback(t *testing.T) {
	doc, err := FromHTML([]byte("<html><head><title> Plain  Title </title></head><body><p>x</p></body></html>"))
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if doc.Title != "Plain Title" {
		t.Fatalf("title = %q", doc.Title)
	}
	if doc.Author != "" || doc.Description != "" || doc.URL != "" {
		t.Fatalf("expected empty metadata, got %+v", doc)
	}
}

func TestFromHTML_VisibleTextOnly(t *testing.T) {
	doc, err := FromHTML([]byte(page))
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	for _, hidden := range []string{"tracking", "color: red", "Enable JavaScript", "Ant - Wikipedia"} {
		if strings.Contains(doc.Text, hidden) {
			t.Fatalf("hidden text %q leaked: %q", hidden, doc.Text)
		}
	}
	want := "Ants are eusocial insects of the family Formicidae. They evolved from vespoid wasp ancestors."
	found := false
	for _, l := range doc.Lines() {
		if l == want {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected paragraph on its own line, got %q", doc.Lines())
	}
}

func TestFromHTML_LineBreaks(t *testing.T) {
	doc, err := FromHTML([]byte("<body><div>First block<br>after break</div><p>Next</p></body>"))
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	got := doc.Lines()
	want := []string{"First block", "after break", "Next"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFromHTML_SourceWrapsJoinLines(t *testing.T) {
	input := "<body><p>The Amazon basin holds more\n\tAnt species than any\r\nother region.</p>" +
		"<pre>line one\nline two</pre></body>"
	doc, err := FromHTML([]byte(input))
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	want := []string{"The Amazon basin holds more Ant species than any other region.", "line one", "line two"}
	if strings.Join(doc.Lines(), "|") != strings.Join(want, "|") {
		t.Fatalf("got %q, want %q", doc.Lines(), want)
	}
}

// A prose paragraph wrapped across source lines must reach the summary
// as one line rather than being dropped piecewise by the length filter.
func TestFromHTML_WrappedParagraphSurvivesSummary(t *testing.T) {
	input := `<html><body>
<p>The Amazon basin holds more Ant species than any other region on Earth,
and researchers from Brazil have catalogued thousands of them across the
rainforest canopy, the leaf litter and the seasonally flooded forests.</p>
<p>Field stations in Brazil host visiting teams every year, and the Ant collections gathered there now fill entire museum halls in several countries.</p>
</body></html>`
	doc, err := FromHTML([]byte(input))
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	res, err := summarize.Summarize(doc.Text, summarize.Options{KeywordLimit: 25, SentenceFraction: 1})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if res.Sentences != 2 || len(res.Paragraphs) != 2 {
		t.Fatalf("sentences=%d paragraphs=%q", res.Sentences, res.Paragraphs)
	}
	if !strings.HasPrefix(res.Paragraphs[0], "The Amazon basin holds more Ant species") {
		t.Fatalf("wrapped paragraph lost: %q", res.Paragraphs)
	}
}

func BenchmarkFromHTML(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("<html><head><title>demo</title></head><body>")
	for i := 0; i < 200; i++ {
		sb.WriteString("<h2>Heading</h2><p>Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor.</p>")
	}
	sb.WriteString("</body></html>")
	input := []byte(sb.String())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = FromHTML(input)
	}
}
