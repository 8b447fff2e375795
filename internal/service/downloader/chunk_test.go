package downloader

import "testing"

func TestChunkSize(t *testing.T) {
	tests := []struct {
		name     string
		fileSize int64
		want     int64
	}{
		{"unknown size", -1, 32 * KB},
		{"zero", 0, 32 * KB},
		{"small file", 500_000, 32 * KB},
		{"1MB boundary", 1 * MB, 128 * KB},
		{"5MB", 5 * MB, 128 * KB},
		{"20MB", 20 * MB, 512 * KB},
		{"60MB", 60 * MB, 1 * MB},
		{"200MB", 200 * MB, 2 * MB},
		{"300MB", 300 * MB, 4 * MB},
		{"700MB", 700 * MB, 8 * MB},
		{"2GB", 2_000_000_000, 16 * MB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChunkSize(tt.fileSize); got != tt.want {
				t.Errorf("ChunkSize(%d) = %d, want %d", tt.fileSize, got, tt.want)
			}
		})
	}
}
