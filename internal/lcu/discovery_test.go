package lcu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandLine(t *testing.T) {
	cases := []struct {
		name    string
		cmdline string
		want    Credentials
		wantErr bool
	}{
		{
			name:    "both arguments present",
			cmdline: `"C:\Riot Games\League of Legends\LeagueClientUx.exe" --riotclient-app-port=55123 --app-port=52341 --remoting-auth-token=Xy3_a-Bc9dEf --locale=en_US`,
			want:    Credentials{Port: 52341, Token: "Xy3_a-Bc9dEf"},
		},
		{
			name:    "token missing",
			cmdline: `LeagueClientUx.exe --app-port=52341 --locale=en_US`,
			wantErr: true,
		},
		{
			name:    "port missing",
			cmdline: `LeagueClientUx.exe --remoting-auth-token=abc --locale=en_US`,
			wantErr: true,
		},
		{
			name:    "empty command line",
			cmdline: "",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			creds, err := parseCommandLine(tc.cmdline)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrClientNotRunning)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, creds)
		})
	}
}
