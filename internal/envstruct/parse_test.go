package envstruct_test

import (
	"strings"
	"testing"
	"time"

	"github.com/myrjola/checkpoint/internal/envstruct"
	"github.com/stretchr/testify/require"
)

func noEnv(_ string) (string, bool) { return "", false }

func TestPopulate(t *testing.T) {
	type args struct {
		v         any
		lookupEnv func(string) (string, bool)
	}
	tests := []struct {
		name    string
		args    args
		want    any
		wantErr error
	}{
		{
			name:    "nil",
			args:    args{v: nil, lookupEnv: noEnv},
			want:    nil,
			wantErr: envstruct.ErrInvalidValue,
		},
		{
			name:    "not pointer",
			args:    args{v: struct{}{}, lookupEnv: noEnv},
			want:    nil,
			wantErr: envstruct.ErrInvalidValue,
		},
		{
			name:    "empty struct",
			args:    args{v: &struct{}{}, lookupEnv: noEnv},
			want:    &struct{}{},
			wantErr: nil,
		},
		{
			name: "empty env",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Addr string `env:"CHECKPOINT_ADDR"`
				}{},
				lookupEnv: noEnv,
			},
			want:    nil,
			wantErr: envstruct.ErrEnvNotSet,
		},
		{
			name: "picks correct env variable",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Addr      string `env:"CHECKPOINT_ADDR"`
					SqliteURL string `env:"CHECKPOINT_SQLITE_URL"`
					Other     string
				}{},
				lookupEnv: func(s string) (string, bool) { return strings.ToLower(s), true },
			},
			want: &struct {
				Addr      string
				SqliteURL string
				Other     string
			}{Addr: "checkpoint_addr", SqliteURL: "checkpoint_sqlite_url", Other: ""},
			wantErr: nil,
		},
		{
			name: "handles defaults of every supported type",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Addr     string        `env:"A" envDefault:"localhost:4000"`
					Length   int           `env:"B" envDefault:"20"`
					Chance   float64       `env:"C" envDefault:"0.6"`
					Enabled  bool          `env:"D" envDefault:"true"`
					Lifetime time.Duration `env:"E" envDefault:"12h"`
				}{},
				lookupEnv: noEnv,
			},
			want: &struct {
				Addr     string
				Length   int
				Chance   float64
				Enabled  bool
				Lifetime time.Duration
			}{Addr: "localhost:4000", Length: 20, Chance: 0.6, Enabled: true, Lifetime: 12 * time.Hour},
			wantErr: nil,
		},
		{
			name: "environment overrides default",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Chance float64 `env:"CHANCE" envDefault:"0.6"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "0.25", true },
			},
			want:    &struct{ Chance float64 }{Chance: 0.25},
			wantErr: nil,
		},
		{
			name: "rejects unparsable int",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Length int `env:"LENGTH"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "twenty", true },
			},
			want:    nil,
			wantErr: envstruct.ErrInvalidValue,
		},
		{
			name: "rejects unsupported type",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Values []string `env:"VALUES" envDefault:"a,b"`
				}{},
				lookupEnv: noEnv,
			},
			want:    nil,
			wantErr: envstruct.ErrInvalidValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := tt.args.v
			err := envstruct.Populate(v, tt.args.lookupEnv)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.EqualValues(t, tt.want, v)
		})
	}
}
