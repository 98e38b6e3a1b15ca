package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleExpand() {
	fmt.Println(Expand("echo", 4507))
	fmt.Println(Expand("file_$$.txt", 4507))
	fmt.Println(Expand("$$$$", 4507))

	// Output: echo
	// file_4507.txt
	// 45074507
}

func TestExpand(t *testing.T) {
	cases := []struct {
		token    string
		expected string
	}{
		{"", ""},
		{"plain", "plain"},
		{"$", "$"},
		{"$$", "99"},
		{"$$$", "99$"},
		{"$$$$", "9999"},
		{"a$$b$$c", "a99b99c"},
		{"smallsh_$$", "smallsh_99"},
	}

	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			assert.Equal(t, tc.expected, Expand(tc.token, 99))
		})
	}
}
