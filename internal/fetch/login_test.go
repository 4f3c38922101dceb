package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLoginWall(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{"sign in to view", `<div>Sign in to view Jane's full profile</div>`, true},
		{"join to see", `<p>Join LinkedIn to see who you already know</p>`, true},
		{"please sign in", `<h2>Please sign in</h2>`, true},
		{"sign in to continue", `<span>SIGN IN TO CONTINUE</span>`, true},
		{"must be logged in", `<p>You must be logged in to do that.</p>`, true},
		{"join", `<a>Join LinkedIn</a>`, true},
		{"profile page", `<h1 class="text-heading-xlarge">Jane Doe</h1>`, false},
		{"empty", ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLoginWall(tt.html))
		})
	}
}
