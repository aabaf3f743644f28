package uploader

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	now := time.Unix(1700000000, 0)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "report.pdf", "report.pdf"},
		{"spaces become stars", "a b.txt", "a*b.txt"},
		{"angle brackets", "a<b>.txt", "a_b_.txt"},
		{"all reserved", `x:"|?\y`, "x_____y"},
		{"empty", "", fmt.Sprintf("file_%d", now.Unix())},
		{"tabs only", "\t\n", fmt.Sprintf("file_%d", now.Unix())},
		{"spaces only", "   ", fmt.Sprintf("file_%d", now.Unix())},
		{"inner spaces kept as stars", " a b ", "*a*b*"},
		{"surrounding tabs trimmed", "\tname.txt\n", "name.txt"},
		{"unicode kept", "отчёт.txt", "отчёт.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in, now))
		})
	}
}

func TestSanitizeFilename_SpacesOnlyGetsGeneratedName(t *testing.T) {
	assert.Regexp(t, `^file_\d+$`, SanitizeFilename("   ", time.Now()))
}

func TestSanitizeFilename_Idempotent(t *testing.T) {
	now := time.Unix(42, 0)
	for _, in := range []string{"a b.txt", `a<b>:"c|d?\e`, "", "\t x \t", "file.tar.gz", "  lead"} {
		once := SanitizeFilename(in, now)
		assert.Equal(t, once, SanitizeFilename(once, now), "input %q", in)
	}
}
