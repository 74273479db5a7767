package editor

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpener(env map[string]string, onPath ...string) *Opener {
	return &Opener{
		getenv: func(k string) string { return env[k] },
		lookPath: func(name string) (string, error) {
			for _, p := range onPath {
				if p == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", exec.ErrNotFound
		},
	}
}

func TestCommand_UsesEditorWithArguments(t *testing.T) {
	o := newTestOpener(map[string]string{"EDITOR": "code --wait", "VISUAL": "emacs"})

	cmd, err := o.Command("/tmp/presets.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "--wait", "/tmp/presets.yaml"}, cmd.Args)
}

func TestCommand_FallsBackToVisual(t *testing.T) {
	o := newTestOpener(map[string]string{"EDITOR": "  ", "VISUAL": "emacs"})

	cmd, err := o.Command("x.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"emacs", "x.yaml"}, cmd.Args)
}

func TestCommand_SearchesPath(t *testing.T) {
	o := newTestOpener(nil, "nano", "vi")

	cmd, err := o.Command("x.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/vi", cmd.Path)
}

func TestCommand_NoEditor(t *testing.T) {
	o := newTestOpener(nil)

	_, err := o.Command("x.yaml")
	assert.True(t, errors.Is(err, ErrNoEditor))
}
