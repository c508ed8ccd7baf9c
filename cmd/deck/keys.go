// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "io"

// pressedKey is a decoded navigation key.
type pressedKey int

const (
	keyNone pressedKey = iota
	keyQuit
	keyNext
	keyPrevious
	keyFirst
	keyLast
)

// readKeys decodes raw-mode input into navigation keys on a channel.
// The channel closes when the input stream ends. Escape sequences
// arrive as a single read in raw mode, so decoding works on whole
// read chunks rather than byte-by-byte state.
func readKeys(input io.Reader) <-chan pressedKey {
	keys := make(chan pressedKey)
	go func() {
		defer close(keys)
		buffer := make([]byte, 8)
		for {
			n, err := input.Read(buffer)
			if err != nil {
				return
			}
			if key := decodeKey(buffer[:n]); key != keyNone {
				keys <- key
			}
		}
	}()
	return keys
}

func decodeKey(chunk []byte) pressedKey {
	if len(chunk) == 0 {
		return keyNone
	}
	switch chunk[0] {
	case 'q', 3: // q, ctrl-c
		return keyQuit
	case ' ', 'l', 'j', '\r', '\n':
		return keyNext
	case 'h', 'k', 0x7f: // backspace
		return keyPrevious
	case 'g':
		return keyFirst
	case 'G':
		return keyLast
	case 0x1b:
		return decodeEscape(chunk[1:])
	}
	return keyNone
}

// decodeEscape handles CSI sequences: arrows, home/end, page up/down.
// A bare escape quits.
func decodeEscape(rest []byte) pressedKey {
	if len(rest) == 0 {
		return keyQuit
	}
	if rest[0] != '[' || len(rest) < 2 {
		return keyNone
	}
	switch rest[1] {
	case 'C', 'B': // right, down
		return keyNext
	case 'D', 'A': // left, up
		return keyPrevious
	case 'H': // home
		return keyFirst
	case 'F': // end
		return keyLast
	case '5': // page up: ESC [ 5 ~
		return keyPrevious
	case '6': // page down: ESC [ 6 ~
		return keyNext
	}
	return keyNone
}
