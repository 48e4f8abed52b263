package core

import "testing"

func TestExtractWikiLinks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want LinkMatch
	}{
		{"plain", "[[Note]]", LinkMatch{Path: "Note"}},
		{"anchor", "[[Note#Head]]", LinkMatch{Path: "Note", Anchor: "Head"}},
		{"block id", "[[Note#^abc123]]", LinkMatch{Path: "Note", BlockID: "abc123"}},
		{"alias", "[[Note|alias]]", LinkMatch{Path: "Note", Desc: "alias"}},
		{"size", "[[img.png|400]]", LinkMatch{Path: "img.png", Size: "400"}},
		{"alias then size", "[[img.png|alias|400]]", LinkMatch{Path: "img.png", Desc: "alias", Size: "400"}},
		{"size then alias", "[[img.png|400|alias]]", LinkMatch{Path: "img.png", Desc: "alias", Size: "400"}},
		{"width x height", "![[img.png|200x100]]", LinkMatch{Embed: true, Path: "img.png", Size: "200x100"}},
		{"embed", "![[img.png]]", LinkMatch{Embed: true, Path: "img.png"}},
		{"anchor only", "[[#Heading]]", LinkMatch{Anchor: "Heading"}},
		{"anchor with alias", "[[Note#Head|custom]]", LinkMatch{Path: "Note", Anchor: "Head", Desc: "custom"}},
		{"path with spaces", "[[My Note|n]]", LinkMatch{Path: "My Note", Desc: "n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractWikiLinks(tt.text)
			if len(got) != 1 {
				t.Fatalf("got %d matches, want 1", len(got))
			}
			m := got[0]
			if m.Kind != "wiki" {
				t.Errorf("Kind = %q, want wiki", m.Kind)
			}
			if m.Embed != tt.want.Embed || m.Path != tt.want.Path ||
				m.Anchor != tt.want.Anchor || m.BlockID != tt.want.BlockID ||
				m.Desc != tt.want.Desc || m.Size != tt.want.Size {
				t.Errorf("got %+v, want %+v", m, tt.want)
			}
			if m.Raw != tt.text {
				t.Errorf("Raw = %q, want %q", m.Raw, tt.text)
			}
		})
	}
}

func TestExtractWikiLinksRejects(t *testing.T) {
	tests := []string{
		"[[]]",
		"[[a[b]]",
		"[[a\nb]]",
		"[[Note#]]",
		"[[Note#^]]",
		"[[Note#a#b]]",
	}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			if got := ExtractWikiLinks(text); len(got) != 0 {
				t.Errorf("got %d matches, want 0", len(got))
			}
		})
	}
}

func TestExtractWikiLinksRescanAfterBadOpener(t *testing.T) {
	// The stray "[[" must not swallow the real link after it.
	got := ExtractWikiLinks("broken [[ then [[Real]]")
	if len(got) != 1 || got[0].Path != "Real" {
		t.Fatalf("got %+v, want one match for Real", got)
	}
}

func TestExtractMarkdownLinks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want LinkMatch
	}{
		{"plain", "[text](note.md)", LinkMatch{Desc: "text", Path: "note.md"}},
		{"anchor", "[text](note.md#Head)", LinkMatch{Desc: "text", Path: "note.md", Anchor: "Head"}},
		{"block id", "[text](note.md#^blk)", LinkMatch{Desc: "text", Path: "note.md", BlockID: "blk"}},
		{"bare size", "[400](img.png)", LinkMatch{Size: "400", Path: "img.png"}},
		{"desc and size", "[alt|300](img.png)", LinkMatch{Desc: "alt", Size: "300", Path: "img.png"}},
		{"embed", "![alt](img.png)", LinkMatch{Embed: true, Desc: "alt", Path: "img.png"}},
		{"anchor only", "[here](#Section)", LinkMatch{Desc: "here", Anchor: "Section"}},
		{"encoded spaces", "[n](My%20Note.md)", LinkMatch{Desc: "n", Path: "My%20Note.md"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractMarkdownLinks(tt.text)
			if len(got) != 1 {
				t.Fatalf("got %d matches, want 1", len(got))
			}
			m := got[0]
			if m.Kind != "markdown" {
				t.Errorf("Kind = %q, want markdown", m.Kind)
			}
			if m.Embed != tt.want.Embed || m.Path != tt.want.Path ||
				m.Anchor != tt.want.Anchor || m.BlockID != tt.want.BlockID ||
				m.Desc != tt.want.Desc || m.Size != tt.want.Size {
				t.Errorf("got %+v, want %+v", m, tt.want)
			}
		})
	}
}

func TestExtractMarkdownLinksRejects(t *testing.T) {
	tests := []string{
		"[a](b(c))",
		"[a]()",
		"[a|b|c](x.md)",
		"[a|notasize](x.md)",
		"[[wiki]](x.md)",
	}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			for _, m := range ExtractMarkdownLinks(text) {
				t.Errorf("unexpected match %+v", m)
			}
		})
	}
}

func TestExtractLinksOrderAndOverlap(t *testing.T) {
	text := "first [[A]] then [b](c.md) then ![[d.png|100]]"
	got := ExtractLinks(text)
	if len(got) != 3 {
		t.Fatalf("got %d matches, want 3", len(got))
	}
	if got[0].Path != "A" || got[1].Path != "c.md" || got[2].Path != "d.png" {
		t.Errorf("unexpected order: %+v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Start < got[i-1].End {
			t.Errorf("matches %d and %d overlap", i-1, i)
		}
	}
}

func TestIsSizeSpec(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"400", true},
		{"200x100", true},
		{"1", true},
		{"12345", false},
		{"400x", false},
		{"x100", false},
		{"alias", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isSizeSpec(tt.s); got != tt.want {
			t.Errorf("isSizeSpec(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}
