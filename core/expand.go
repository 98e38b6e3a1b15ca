package core

import (
	"strconv"
	"strings"
)

// pidMarker is the token substring replaced with the shell's process ID.
const pidMarker = "$$"

// Expand replaces every non-overlapping occurrence of the PID marker in
// token with the decimal form of pid. Matching is greedy left to right,
// so "$$$$" becomes two copies of the PID and "$$$" keeps a bare "$".
func Expand(token string, pid int) string {
	if !strings.Contains(token, pidMarker) {
		return token
	}
	return strings.ReplaceAll(token, pidMarker, strconv.Itoa(pid))
}
