package ffmpeg

// DefaultBinary is used when no explicit ffmpeg path is configured.
const DefaultBinary = "ffmpeg"

// CreationTimeKey is the container-level tag written by [Build].
const CreationTimeKey = "creation_time"

// Request describes one metadata rewrite.
type Request struct {
	Input        string
	Output       string
	CreationTime string // Already formatted, e.g. "2022-03-19T12:00:00Z".
}

// Build constructs the complete argument slice, binary first. Streams are
// copied as-is, existing tags are carried over from input 0, and the output
// is overwritten unconditionally.
func Build(bin string, req *Request) []string {
	if bin == "" {
		bin = DefaultBinary
	}
	args := make([]string, 0, 11)
	args = append(args, bin)

	// --- Input ---
	args = append(args, "-i", req.Input)

	// --- Metadata ---
	args = append(args,
		"-metadata", CreationTimeKey+"="+req.CreationTime,
		"-map_metadata", "0",
	)

	// --- Stream copy (no re-encode) ---
	args = append(args, "-c", "copy")

	// --- Output ---
	args = append(args, "-y", req.Output)

	return args
}
