package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate value",
			args:         []string{"-c", "conf.json", "-a", "https://api.example"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "equals form",
			args:         []string{"-config=alt.json", "-u", "42"},
			allowedFlags: []string{"-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "several allowed flags keep their order",
			args:         []string{"-u", "42", "-x", "1", "-i", "10"},
			allowedFlags: []string{"-i", "-u"},
			want:         []string{"-u", "42", "-i", "10"},
		},
		{
			name:         "flag at the end without value",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash argument is not a value",
			args:         []string{"-c", "-u", "7"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "positional arguments dropped",
			args:         []string{"ghupload", "report.pdf"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, "/etc/gitdrop.json", ConfigFile([]string{"-c", "/etc/gitdrop.json"}))
	assert.Equal(t, "long.json", ConfigFile([]string{"-u", "1", "-config", "long.json"}))
	assert.Equal(t, "2.json", ConfigFile([]string{"-c", "1.json", "-config=2.json"}))
	assert.Empty(t, ConfigFile([]string{"-x", "1"}))
	assert.Empty(t, ConfigFile(nil))
}
