package resolver

import (
	"strings"
	"testing"
)

func TestMergeFilename(t *testing.T) {
	tests := []struct {
		name     string
		pageName string
		urlName  string
		want     string
	}{
		{
			name:     "identical names pass through",
			pageName: "movie.mp4",
			urlName:  "movie.mp4",
			want:     "movie.mp4",
		},
		{
			name:     "url name wins when it contains the page stem",
			pageName: "cat",
			urlName:  "cat-ab12.png",
			want:     "cat-ab12.png",
		},
		{
			name:     "unrelated names are joined",
			pageName: "report",
			urlName:  "xz99.pdf",
			want:     "report-xz99.pdf",
		},
		{
			name:     "page extension preferred when both have one",
			pageName: "holiday.jpg",
			urlName:  "a1b2.jpeg",
			want:     "holiday-a1b2.jpg",
		},
		{
			name:     "empty page name falls back to url name",
			pageName: "",
			urlName:  "x.bin",
			want:     "x.bin",
		},
		{
			name:     "empty url name falls back to page name",
			pageName: "keep.jpg",
			urlName:  "",
			want:     "keep.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeFilename(tt.pageName, tt.urlName); got != tt.want {
				t.Errorf("MergeFilename(%q, %q) = %q, want %q", tt.pageName, tt.urlName, got, tt.want)
			}
		})
	}
}

func TestURLBasedFilename(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://milkshake.bunkr.ru/sunset-ab12.jpg", "sunset-ab12.jpg"},
		{"https://cdn.bunkr.ru/dir/file.mp4?x=1", "file.mp4"},
	}

	for _, tt := range tests {
		if got := URLBasedFilename(tt.url); got != tt.want {
			t.Errorf("URLBasedFilename(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "illegal characters replaced",
			in:   `a<b>c:d"e/f\g|h?i*.mp4`,
			want: "a_b_c_d_e_f_g_h_i_.mp4",
		},
		{
			name: "clean name untouched",
			in:   "sunset-ab12.jpg",
			want: "sunset-ab12.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeTruncatesPreservingExtension(t *testing.T) {
	long := strings.Repeat("x", 200) + ".jpg"

	got := Sanitize(long)
	if len(got) != 120 {
		t.Errorf("Sanitize() length = %d, want 120", len(got))
	}
	if !strings.HasSuffix(got, ".jpg") {
		t.Errorf("Sanitize() = %q, want .jpg suffix", got)
	}
}
