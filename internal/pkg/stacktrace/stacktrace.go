// Package stacktrace trims raw goroutine dumps down to the frames that live
// under this repository's internal tree, which is what panic logs care about.
package stacktrace

import "strings"

// InternalPaths extracts "internal/...go:line" fragments from a stack dump
// produced by runtime/debug.Stack.
func InternalPaths(stack []byte) []string {
	var paths []string

	lines := strings.Split(string(stack), "\n")
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		idx := strings.Index(line, ".go:")
		if idx == -1 || !strings.Contains(line, "/internal/") {
			continue
		}

		end := len(line)
		if sp := strings.Index(line[idx:], " "); sp != -1 {
			end = idx + sp
		}

		frag := line[:end]
		if at := strings.Index(frag, "/internal/"); at != -1 {
			paths = append(paths, frag[at+1:])
		}
	}

	return paths
}
