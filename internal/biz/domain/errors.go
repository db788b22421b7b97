package domain

import "errors"

// ErrUnavailable marks a failed stats/appointments retrieval: network
// error, timeout, non-2xx status or malformed payload. The previous
// cached snapshot (if any) is left untouched.
var ErrUnavailable = errors.New("backend unavailable")

// ErrChatFailed marks a failed /chat/web exchange. The optimistic user
// message stays in history; no assistant message is appended.
var ErrChatFailed = errors.New("chat request failed")
