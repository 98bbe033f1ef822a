package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInitialsFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Juan Dela Cruz", "JC"},
		{"juan", "J"},
		{"  ", "U"},
		{"", "U"},
		{"Anne-Marie Lopez", "AL"},
		{"Ñora Íbañez", "ÑÍ"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetInitialsFromName(tt.name), "name %q", tt.name)
	}
}

func TestAvatarURLIsStable(t *testing.T) {
	a := AvatarURL("Juan Dela Cruz")
	b := AvatarURL("juan dela cruz ")

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "https://api.dicebear.com/7.x/initials/svg?seed=JC&backgroundColor="))
}
