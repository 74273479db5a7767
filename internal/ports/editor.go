package ports

import "os/exec"

// FileOpener opens a file for the user to look at or edit
type FileOpener interface {
	OpenFile(path string) error

	// Command returns the process that OpenFile would run, for hosts that
	// need to hand over the terminal themselves (e.g. bubbletea's ExecProcess)
	Command(path string) (*exec.Cmd, error)
}
