package media

import "errors"

// ErrUnreadableSource marks a source file ffprobe/ffmpeg could not make sense
// of. Retrying the same input is pointless, so the worker skips the retry
// budget for it.
var ErrUnreadableSource = errors.New("source file is unreadable or corrupt")
