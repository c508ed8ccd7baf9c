// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"testing"
)

func TestDecodeKey(t *testing.T) {
	cases := []struct {
		chunk []byte
		key   pressedKey
	}{
		{[]byte("q"), keyQuit},
		{[]byte{3}, keyQuit},
		{[]byte{0x1b}, keyQuit},
		{[]byte(" "), keyNext},
		{[]byte("l"), keyNext},
		{[]byte("j"), keyNext},
		{[]byte("\r"), keyNext},
		{[]byte("h"), keyPrevious},
		{[]byte("k"), keyPrevious},
		{[]byte{0x7f}, keyPrevious},
		{[]byte("g"), keyFirst},
		{[]byte("G"), keyLast},
		{[]byte("\x1b[C"), keyNext},
		{[]byte("\x1b[B"), keyNext},
		{[]byte("\x1b[D"), keyPrevious},
		{[]byte("\x1b[A"), keyPrevious},
		{[]byte("\x1b[H"), keyFirst},
		{[]byte("\x1b[F"), keyLast},
		{[]byte("\x1b[5~"), keyPrevious},
		{[]byte("\x1b[6~"), keyNext},
		{[]byte("x"), keyNone},
		{nil, keyNone},
		{[]byte("\x1b]0;title\a"), keyNone},
	}
	for _, testCase := range cases {
		if key := decodeKey(testCase.chunk); key != testCase.key {
			t.Errorf("decodeKey(%q) = %d, want %d", testCase.chunk, key, testCase.key)
		}
	}
}

func TestReadKeysDrainsInput(t *testing.T) {
	input := bytes.NewReader([]byte("jq"))
	keys := readKeys(input)

	var received []pressedKey
	for key := range keys {
		received = append(received, key)
	}
	// The 2-byte read arrives as one chunk; only its first byte
	// decodes. Either way the channel closes at end of input.
	if len(received) == 0 {
		t.Fatal("no keys decoded before channel close")
	}
	if received[0] != keyNext {
		t.Errorf("first key %d, want keyNext", received[0])
	}
}
