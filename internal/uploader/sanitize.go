package uploader

import (
	"fmt"
	"strings"
	"time"
)

var filenameReplacer = strings.NewReplacer(
	" ", "*",
	"<", "_",
	">", "_",
	":", "_",
	`"`, "_",
	"|", "_",
	"?", "_",
	`\`, "_",
)

// SanitizeFilename makes name safe for use as a repository path. Spaces
// become '*' and each of <>:"|?\ becomes '_'. A name that is empty or only
// whitespace is replaced by file_<unix seconds of now>.
func SanitizeFilename(name string, now time.Time) string {
	// Blank input is detected before spaces are turned into stars.
	if strings.TrimSpace(name) == "" {
		return fmt.Sprintf("file_%d", now.Unix())
	}
	return strings.TrimSpace(filenameReplacer.Replace(name))
}
