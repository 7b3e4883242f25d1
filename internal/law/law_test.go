package law

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SearchMode
		wantErr bool
	}{
		{"ipc", ModeIPC, false},
		{" BNS ", ModeBNS, false},
		{"bnss", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeToggle(t *testing.T) {
	assert.Equal(t, ModeBNS, ModeIPC.Toggle())
	assert.Equal(t, ModeIPC, ModeBNS.Toggle())
	assert.Equal(t, "IPC", ModeIPC.Label())
}

func TestPrimarySection(t *testing.T) {
	assert.Equal(t, "302", Result{IPCSections: "302"}.PrimarySection())
	assert.Equal(t, "34", Result{IPCSections: " 34 , 120B"}.PrimarySection())
	assert.Equal(t, "", Result{}.PrimarySection())
}

func TestSettingsGetWith(t *testing.T) {
	s := DefaultSettings()
	v, err := s.Get("voiceSearch")
	require.NoError(t, err)
	assert.True(t, v)

	s, err = s.With("autocomplete", false)
	require.NoError(t, err)
	assert.False(t, s.Autocomplete)
	assert.True(t, s.VoiceSearch)

	_, err = s.With("darkMode", true)
	assert.Error(t, err)
	_, err = s.Get("darkMode")
	assert.Error(t, err)
}

func TestTheme(t *testing.T) {
	th, err := ParseTheme("Dark")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)
	assert.Equal(t, ThemeLight, th.Toggle())
	_, err = ParseTheme("solarized")
	assert.Error(t, err)
}
