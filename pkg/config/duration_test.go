package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidatePositiveDuration(t *testing.T) {
	tests := []struct {
		name    string
		d       time.Duration
		wantErr bool
	}{
		{"request timeout", 30 * time.Second, false},
		{"one nanosecond", time.Nanosecond, false},
		{"zero", 0, true},
		{"negative", -time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositiveDuration(tt.d)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
