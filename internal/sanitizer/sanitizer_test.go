package sanitizer

import (
	"strings"
	"testing"
)

func TestSanitize_StripsScript(t *testing.T) {
	s := NewRichText()

	got := s.Sanitize("<script>x</script><b>ok</b>")
	if got != "<b>ok</b>" {
		t.Errorf("expected %q, got %q", "<b>ok</b>", got)
	}
}

func TestSanitize_KeepsFormattingTags(t *testing.T) {
	s := NewRichText()

	in := "<h1>Title</h1><blockquote><em>quote</em></blockquote><ul><li>one</li></ul><hr/>"
	got := s.Sanitize(in)

	for _, tag := range []string{"<h1>", "<blockquote>", "<em>", "<ul>", "<li>"} {
		if !strings.Contains(got, tag) {
			t.Errorf("expected output to keep %s, got %q", tag, got)
		}
	}
}

func TestSanitize_DropsEventHandlers(t *testing.T) {
	s := NewRichText()

	got := s.Sanitize(`<p onclick="alert(1)">hi</p>`)
	if strings.Contains(got, "onclick") {
		t.Errorf("expected onclick to be stripped, got %q", got)
	}
	if !strings.Contains(got, "hi") {
		t.Errorf("expected text content to survive, got %q", got)
	}
}

func TestSanitize_ForcesAnchorRelAndTarget(t *testing.T) {
	s := NewRichText()

	cases := []string{
		`<a href="https://example.com">link</a>`,
		`<a href="https://example.com" target="_self" rel="nofollow">link</a>`,
		`<a href="mailto:a@example.com">mail</a>`,
	}

	for _, in := range cases {
		got := s.Sanitize(in)
		if !strings.Contains(got, `rel="noopener noreferrer"`) {
			t.Errorf("Sanitize(%q) = %q, missing forced rel", in, got)
		}
		if !strings.Contains(got, `target="_blank"`) {
			t.Errorf("Sanitize(%q) = %q, missing forced target", in, got)
		}
		if strings.Contains(got, "nofollow") || strings.Contains(got, "_self") {
			t.Errorf("Sanitize(%q) = %q, user-supplied rel/target survived", in, got)
		}
	}
}

func TestSanitize_BlocksJavascriptURLs(t *testing.T) {
	s := NewRichText()

	got := s.Sanitize(`<a href="javascript:alert(1)">x</a>`)
	if strings.Contains(got, "javascript") {
		t.Errorf("expected javascript: href to be removed, got %q", got)
	}
}

func TestSanitize_AllowsDataURIImages(t *testing.T) {
	s := NewRichText()

	in := `<img src="data:image/png;base64,iVBORw0KGgoAAAANSUhEUg==" alt="dot"/>`
	got := s.Sanitize(in)
	if !strings.Contains(got, "data:image/png") {
		t.Errorf("expected data URI image to survive, got %q", got)
	}
}

func TestSanitize_FiltersStyleDeclarations(t *testing.T) {
	s := NewRichText()

	in := `<p style="color:#ff0000;position:absolute;font-size:20px">x</p>`
	got := s.Sanitize(in)

	if !strings.Contains(got, "color") {
		t.Errorf("expected allowed color declaration to survive, got %q", got)
	}
	if !strings.Contains(got, "font-size") {
		t.Errorf("expected allowed font-size declaration to survive, got %q", got)
	}
	if strings.Contains(got, "position") {
		t.Errorf("expected disallowed position declaration to be dropped, got %q", got)
	}
}

func TestSanitize_RejectsBadStyleValues(t *testing.T) {
	s := NewRichText()

	in := `<p style="color:expression(alert(1));text-align:center">x</p>`
	got := s.Sanitize(in)

	if strings.Contains(got, "expression") {
		t.Errorf("expected malicious color value to be dropped, got %q", got)
	}
	if !strings.Contains(got, "text-align") {
		t.Errorf("expected valid text-align declaration to survive, got %q", got)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	s := NewRichText()

	inputs := []string{
		"<b>plain</b>",
		`<a href="https://example.com" rel="nofollow">link</a>`,
		`<p style="color:#00ff00">green</p> <script>bad()</script>`,
		`<h2>heading</h2><img src="https://example.com/x.png" alt="x"/>`,
		"no markup at all",
	}

	for _, in := range inputs {
		once := s.Sanitize(in)
		twice := s.Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestSanitize_MalformedMarkup(t *testing.T) {
	s := NewRichText()

	// Unclosed and misnested tags must degrade, not fail.
	got := s.Sanitize("<b><i>text</b> <ul><li>item")
	if !strings.Contains(got, "text") || !strings.Contains(got, "item") {
		t.Errorf("expected text to survive malformed markup, got %q", got)
	}
}
