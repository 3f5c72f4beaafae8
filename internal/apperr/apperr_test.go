package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteErrClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		msg    string
		kind   Kind
	}{
		{"conflict with message", http.StatusConflict, "title must be unique", Invalid},
		{"bad request without message", http.StatusBadRequest, "", Unknown},
		{"server error with message", http.StatusInternalServerError, "boom", Invalid},
		{"server error without message", http.StatusInternalServerError, "", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RemoteErr(tt.status, tt.msg)
			assert.Equal(t, tt.kind, err.Kind)
			assert.Equal(t, tt.status, err.Status)
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "title must be unique",
		PublicMessage(RemoteErr(http.StatusBadRequest, "title must be unique"), "fallback"))
	assert.Equal(t, "upstream", PublicMessage(RemoteErr(http.StatusBadGateway, "upstream"), "fallback"))
	assert.Equal(t, "fallback", PublicMessage(RemoteErr(http.StatusBadGateway, ""), "fallback"))
	assert.Equal(t, NetworkMessage, PublicMessage(NetworkErr(errors.New("dial tcp")), "fallback"))
	assert.Equal(t, "fallback", PublicMessage(errors.New("plain"), "fallback"))
}

func TestIsUnauthorizedThroughWrapping(t *testing.T) {
	err := fmt.Errorf("list products: %w", UnauthorizedErr(http.StatusUnauthorized, ""))
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsUnauthorized(InvalidErr("nope")))
	assert.Equal(t, Unauthorized, Wrap(err).Kind)
}
