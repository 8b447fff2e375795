package bunkrweb

import (
	"net/url"
	"reflect"
	"testing"
)

const itemPage = `<html><body>
<h1 class="text-subs font-semibold text-base sm:text-lg truncate">sunset.jpg</h1>
</body></html>`

const albumPage = `<html><body>
<div class="text-subs font-semibold flex text-base sm:text-lg"><h1>Trip &amp; Beach</h1></div>
<a class="after:absolute after:z-10 after:inset-0" href="/f/one">one</a>
<a class="after:absolute after:z-10 after:inset-0" href="/v/two">two</a>
<a class="after:absolute after:z-10 after:inset-0" href="https://elsewhere.example/abs">abs</a>
<a class="plain-link" href="/f/three">not an item</a>
</body></html>`

const statusPage = `<html><body>
<div class="flex items-center gap-4 py-4 border-b border-soft last:border-b-0">
  <p>Milkshake</p><span>Operational</span>
</div>
<div class="flex items-center gap-4 py-4 border-b border-soft last:border-b-0">
  <p>Burger</p><span>Non-operational</span>
</div>
<div class="flex items-center gap-4 py-4 border-b border-soft last:border-b-0">
  <p></p><span>Operational</span>
</div>
</body></html>`

func TestExtractorItemFilename(t *testing.T) {
	e := NewExtractor()

	if got := e.ItemFilename([]byte(itemPage)); got != "sunset.jpg" {
		t.Errorf("ItemFilename() = %q, want %q", got, "sunset.jpg")
	}

	if got := e.ItemFilename([]byte("<html><body></body></html>")); got != "" {
		t.Errorf("ItemFilename() on empty page = %q, want empty", got)
	}
}

func TestExtractorItemFilenameLatin1(t *testing.T) {
	// "fée.jpg" mis-decoded as Latin-1 renders as "fÃ©e.jpg".
	page := `<html><body><h1 class="truncate">f` + "Ã©" + `e.jpg</h1></body></html>`

	e := NewExtractor()
	if got := e.ItemFilename([]byte(page)); got != "fée.jpg" {
		t.Errorf("ItemFilename() = %q, want %q", got, "fée.jpg")
	}
}

func TestExtractorAlbumName(t *testing.T) {
	e := NewExtractor()
	if got := e.AlbumName([]byte(albumPage)); got != "Trip & Beach" {
		t.Errorf("AlbumName() = %q, want %q", got, "Trip & Beach")
	}
}

func TestExtractorAlbumItems(t *testing.T) {
	e := NewExtractor()
	base, _ := url.Parse("https://bunkr.si/a/abc123")

	got := e.AlbumItems([]byte(albumPage), base)
	want := []string{
		"https://bunkr.si/f/one",
		"https://bunkr.si/v/two",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AlbumItems() = %v, want %v", got, want)
	}
}

func TestExtractorAlbumItemsNoMatches(t *testing.T) {
	e := NewExtractor()
	base, _ := url.Parse("https://bunkr.si/a/abc123")

	if got := e.AlbumItems([]byte("<html><body><p>empty</p></body></html>"), base); len(got) != 0 {
		t.Errorf("AlbumItems() = %v, want empty", got)
	}
}

func TestExtractorServerStatus(t *testing.T) {
	e := NewExtractor()

	got := e.ServerStatus([]byte(statusPage))
	want := map[string]string{
		"Milkshake": "Operational",
		"Burger":    "Non-operational",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ServerStatus() = %v, want %v", got, want)
	}
}

func TestFixLatin1(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii untouched", "movie.mp4", "movie.mp4"},
		{"mis-encoded utf-8 repaired", "fÃ©e.jpg", "fée.jpg"},
		{"legit accented name kept", "café.png", "café.png"},
		{"wide runes kept", "日本.png", "日本.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fixLatin1(tt.in); got != tt.want {
				t.Errorf("fixLatin1(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
