package server_test

import (
	"testing"

	"booktracker/core/server"

	"github.com/stretchr/testify/assert"
)

func TestIsValidScheme(t *testing.T) {
	tests := []struct {
		name   string
		scheme string
		want   bool
	}{
		{"Token", server.SchemeToken, true},
		{"Bearer", server.SchemeBearer, true},
		{"Basic", "Basic", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, server.IsValidScheme(tt.scheme))
		})
	}
}

func TestConfig_Schemes(t *testing.T) {
	c := server.Config{AuthSchemes: "Token, Basic ,Bearer"}
	assert.Equal(t, []string{"Token", "Bearer"}, c.Schemes())

	assert.Empty(t, server.Config{}.Schemes())
}

func TestConfig_BodyLimit(t *testing.T) {
	assert.Equal(t, 512*1024, server.Config{BodyLimitKB: 512}.BodyLimit())
	assert.Equal(t, 4*1024*1024, server.Config{}.BodyLimit())
}
