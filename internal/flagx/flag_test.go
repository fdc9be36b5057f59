package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-d", "vault.db", "-x", "1"},
			allowed: []string{"-d"},
			want:    []string{"-d", "vault.db"},
		},
		{
			name:    "equals form",
			args:    []string{"-l=en", "-d", "x.db"},
			allowed: []string{"-l"},
			want:    []string{"-l=en"},
		},
		{
			name:    "order preserved across several flags",
			args:    []string{"-l", "en", "-d=x.db", "-k", "catalog.yaml"},
			allowed: []string{"-d", "-k", "-l"},
			want:    []string{"-l", "en", "-d=x.db", "-k", "catalog.yaml"},
		},
		{
			name:    "unknown flags and positionals ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-d"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-d"},
			allowed: []string{"-d"},
			want:    []string{"-d"},
		},
		{
			name:    "next argument is a flag",
			args:    []string{"-d", "-l", "en"},
			allowed: []string{"-d"},
			want:    []string{"-d"},
		},
		{
			name:    "nil args",
			args:    nil,
			allowed: []string{"-d"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFile(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "a.json"}, "a.json"},
		{"long", []string{"-config", "b.json"}, "b.json"},
		{"long equals", []string{"-d", "x.db", "-config=c.json"}, "c.json"},
		{"double dash", []string{"--config", "d.json"}, "d.json"},
		{"absent", []string{"-d", "x.db"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFile(tt.args))
		})
	}
}
