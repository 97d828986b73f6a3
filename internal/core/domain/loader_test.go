package domain_test

import (
	"errors"
	"testing"

	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoader(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Loader
		dir   string
	}{
		{"paper", domain.LoaderPaper, "plugins"},
		{"Paper", domain.LoaderPaper, "plugins"},
		{"fabric", domain.LoaderFabric, "mods"},
		{"forge", domain.LoaderForge, "mods"},
		{"NEOFORGE", domain.LoaderNeoForge, "mods"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l, err := domain.ParseLoader(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, l)
			assert.True(t, l.Valid())
			assert.Equal(t, tt.dir, l.InstallDir())
		})
	}
}

func TestParseLoader_Unknown(t *testing.T) {
	l, err := domain.ParseLoader("spigot")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfiguration))
	assert.Equal(t, domain.LoaderUnknown, l)
	assert.False(t, l.Valid())
}

func TestLoader_Text(t *testing.T) {
	for _, l := range domain.Loaders {
		t.Run(l.String(), func(t *testing.T) {
			text, err := l.MarshalText()
			require.NoError(t, err)

			var out domain.Loader
			require.NoError(t, out.UnmarshalText(text))
			assert.Equal(t, l, out)
		})
	}

	var unknown domain.Loader
	require.NoError(t, unknown.UnmarshalText(nil))
	assert.Equal(t, domain.LoaderUnknown, unknown)
	assert.Equal(t, []string{"fabric", "forge", "paper", "neoforge"}, domain.LoaderNames())
}
