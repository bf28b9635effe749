package common

import "strings"

func HttpStatusIsSuccess(status int) bool {
	return status >= 200 && status < 300
}

// JoinURL joins a base url and an endpoint path with exactly one slash between them.
func JoinURL(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
