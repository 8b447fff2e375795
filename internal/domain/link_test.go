package domain

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Kind
	}{
		{
			name: "album link",
			url:  "https://bunkr.si/a/abc123",
			want: KindAlbum,
		},
		{
			name: "file link",
			url:  "https://bunkr.si/f/photo-xyz",
			want: KindFile,
		},
		{
			name: "video link",
			url:  "https://bunkr.si/v/clip-01",
			want: KindVideo,
		},
		{
			name: "unrecognized marker",
			url:  "https://bunkr.si/z/whatever",
			want: KindUnknown,
		},
		{
			name: "trailing slash does not change result",
			url:  "https://bunkr.si/f/photo-xyz/",
			want: KindFile,
		},
		{
			name: "percent-encoded marker",
			url:  "https://bunkr.si/%61/abc123",
			want: KindAlbum,
		},
		{
			name: "bare host",
			url:  "https://bunkr.si",
			want: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.url); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestIdentify(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		pageContent string
		want        string
	}{
		{
			name: "album id from last segment",
			url:  "https://bunkr.si/a/abc123",
			want: "abc123",
		},
		{
			name: "album id trailing slash trimmed",
			url:  "https://bunkr.si/a/abc123/",
			want: "abc123",
		},
		{
			name: "file slug used verbatim",
			url:  "https://bunkr.si/f/photo_01-xyz",
			want: "photo_01-xyz",
		},
		{
			name:        "invalid slug falls back to page content",
			url:         "https://bunkr.si/f/some%20name.jpg",
			pageContent: `<script>const slug = "real-slug_42"</script>`,
			want:        "real-slug_42",
		},
		{
			name: "invalid slug without page content keeps raw segment",
			url:  "https://bunkr.si/f/some%20name.jpg",
			want: "some name.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identify(tt.url, tt.pageContent); got != tt.want {
				t.Errorf("Identify(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestIdentifyIsDeterministic(t *testing.T) {
	const url = "https://bunkr.si/f/photo-xyz"
	first := Identify(url, "")
	for i := 0; i < 10; i++ {
		if got := Identify(url, ""); got != first {
			t.Fatalf("Identify returned %q then %q for the same input", first, got)
		}
	}
}

func TestIsSupportedURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://bunkr.si/f/abc", true},
		{"https://bunkr.cr/a/xyz", true},
		{"https://media.bunkr.ru/file.mp4", true},
		{"https://example.com/f/abc", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsSupportedURL(tt.url); got != tt.want {
			t.Errorf("IsSupportedURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestSubdomain(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://milkshake.bunkr.ru/file.mp4", "Milkshake"},
		{"https://CDN4.bunkr.ru/x", "Cdn4"},
		{"https://bunkr.si/f/abc", "Bunkr"},
		{"://bad url", ""},
	}

	for _, tt := range tests {
		if got := Subdomain(tt.url); got != tt.want {
			t.Errorf("Subdomain(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestRewriteHost(t *testing.T) {
	got := RewriteHost("https://bunkr.ax/f/abc?x=1", "bunkr.cr")
	want := "https://bunkr.cr/f/abc?x=1"
	if got != want {
		t.Errorf("RewriteHost() = %q, want %q", got, want)
	}
}
