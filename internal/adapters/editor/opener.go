package editor

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"presetdeck/internal/ports"
)

// ErrNoEditor is returned when neither the environment nor $PATH names an editor
var ErrNoEditor = errors.New("no editor found: set $EDITOR")

var fallbackEditors = []string{"nvim", "vim", "vi", "nano"}

// Opener opens files in the user's editor
type Opener struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
}

var _ ports.FileOpener = (*Opener)(nil)

// NewOpener creates an opener that reads $EDITOR and $VISUAL
func NewOpener() *Opener {
	return &Opener{getenv: os.Getenv, lookPath: exec.LookPath}
}

// OpenFile runs the editor on path and waits for it to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command builds the editor process for path, attached to the terminal.
// $EDITOR may carry arguments, e.g. "code --wait".
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv, err := o.editor()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

func (o *Opener) editor() ([]string, error) {
	for _, name := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(o.getenv(name)); len(fields) > 0 {
			return fields, nil
		}
	}
	for _, name := range fallbackEditors {
		if path, err := o.lookPath(name); err == nil {
			return []string{path}, nil
		}
	}
	return nil, ErrNoEditor
}
