package forms

import (
	"fmt"
	"net/url"
	"strings"
)

// ShareURL is the public application link for a job.
func ShareURL(baseURL, jobID string) string {
	return strings.TrimRight(baseURL, "/") + "/apply/" + url.PathEscape(jobID)
}

// EmbedSnippet wraps a share URL in an iframe tag.
func EmbedSnippet(shareURL string) string {
	return fmt.Sprintf(`<iframe src="%s" width="100%%" height="600px" frameborder="0"></iframe>`, shareURL)
}
