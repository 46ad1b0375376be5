package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRejectsNonHTTP(t *testing.T) {
	orig := launch
	t.Cleanup(func() { launch = orig })

	var launched []string
	launch = func(name string, args ...string) error {
		launched = append(launched, args[len(args)-1])
		return nil
	}

	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com/story", false},
		{"http://example.com", false},
		{"file:///etc/passwd", true},
		{"javascript:alert(1)", true},
		{"ftp://example.com", true},
		{"", true},
		{"https://", true},
	}

	for _, tt := range tests {
		err := Open(tt.url)
		if tt.wantErr {
			assert.Error(t, err, tt.url)
		} else {
			assert.NoError(t, err, tt.url)
		}
	}

	require.Equal(t, []string{"https://example.com/story", "http://example.com"}, launched)
}

func TestValidateUnsupportedScheme(t *testing.T) {
	assert.ErrorIs(t, Validate("mailto:news@example.com"), ErrUnsupportedScheme)
	assert.NoError(t, Validate("https://example.com"))
}
