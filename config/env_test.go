package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr []error
	}{
		{
			name:    "production with defaults",
			env:     map[string]string{"APP_ENV": "production"},
			wantErr: []error{ErrDefaultJWTSecret, ErrMissingWebhookSecret},
		},
		{
			name:    "production without webhook secret",
			env:     map[string]string{"APP_ENV": "production", "JWT_SECRET": "a-long-random-value"},
			wantErr: []error{ErrMissingWebhookSecret},
		},
		{
			name: "production configured",
			env:  map[string]string{
				"APP_ENV":               "production",
				"JWT_SECRET":            "a-long-random-value",
				"STRIPE_WEBHOOK_SECRET": "whsec_live",
			},
		},
		{
			name: "development keeps defaults",
			env:  map[string]string{"APP_ENV": "development"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			t.Setenv("STRIPE_WEBHOOK_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := FromEnv().Validate()
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}
