package uploader

import (
	"context"
	"fmt"
	"strings"
)

// DefaultMaxProbeAttempts caps ResolveFilename when no limit is given.
const DefaultMaxProbeAttempts = 1000

// ResolveFilename returns the first of filename, stem_1ext, stem_2ext, ...
// that does not exist in owner/repo. A failed lookup counts as free. After
// maxAttempts probes it gives up with ErrProbeExhausted.
func ResolveFilename(ctx context.Context, api RemoteAPI, owner, repo, filename string, maxAttempts int) (string, error) {

	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxProbeAttempts
	}

	stem, ext := splitExt(filename)
	candidate := filename

	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
		}
		if _, err := api.GetContent(ctx, owner, repo, candidate); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w after %d attempts", ErrProbeExhausted, maxAttempts)
}

// splitExt splits name at its last dot. Dots leading the final path
// element do not start an extension, so ".env" has none.
func splitExt(name string) (stem, ext string) {
	sep := strings.LastIndex(name, "/")
	dot := strings.LastIndex(name, ".")
	if dot <= sep {
		return name, ""
	}
	for i := sep + 1; i < dot; i++ {
		if name[i] != '.' {
			return name[:dot], name[dot:]
		}
	}
	return name, ""
}
