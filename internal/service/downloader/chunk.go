package downloader

// Size units
const (
	KB int64 = 1024
	MB       = 1024 * KB
	GB       = 1024 * MB
)

// chunkTiers maps expected file size to copy buffer size: small files get
// small chunks for progress granularity, large files scale up to bound
// syscall overhead without holding excessive memory.
var chunkTiers = []struct {
	below int64
	chunk int64
}{
	{1 * MB, 32 * KB},
	{10 * MB, 128 * KB},
	{50 * MB, 512 * KB},
	{100 * MB, 1 * MB},
	{250 * MB, 2 * MB},
	{500 * MB, 4 * MB},
	{1 * GB, 8 * MB},
}

// largeFileChunkSize is the ceiling for files of 1GB and above.
const largeFileChunkSize = 16 * MB

// ChunkSize returns the copy buffer size for an expected file size. An
// unknown size (negative) gets the smallest chunk.
func ChunkSize(fileSize int64) int64 {
	for _, tier := range chunkTiers {
		if fileSize < tier.below {
			return tier.chunk
		}
	}
	return largeFileChunkSize
}
