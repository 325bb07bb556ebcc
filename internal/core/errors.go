package core

import "errors"

var (
	ErrEmptyInput  = errors.New("empty input")
	ErrNotFound    = errors.New("not found")
	ErrNoSpeech    = errors.New("speech not recognized")
	ErrUnknownMood = errors.New("unknown mood")
)
