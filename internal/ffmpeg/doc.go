// Package ffmpeg builds and executes the ffmpeg command that rewrites a
// container's creation_time tag without re-encoding.
//
// The command shape is fixed:
//
//	ffmpeg -i <input> -metadata creation_time=<ts> -map_metadata 0 -c copy -y <output>
//
// [Execute] distinguishes three failure kinds: the binary could not be
// started ([LaunchError], matching [ErrToolUnavailable]), it ran and exited
// non-zero ([ExecError]), or the context ended first (wrapped ctx.Err()).
package ffmpeg
