package commands

import (
	"context"

	"presetdeck/internal/application"
	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// SubjectPosition is where a subject ended up after a command
type SubjectPosition struct {
	SubjectID string
	Cursor    domain.Cursor
}

// CycleResult contains the result of a cycle operation
type CycleResult struct {
	Direction domain.Direction
	Positions []SubjectPosition
}

// CycleCommand steps one subject, or every attached subject, by one item
type CycleCommand struct {
	cycler    ports.Cycler
	SubjectID string
	Direction domain.Direction
	All       bool
}

// NewCycleCommand creates a command that cycles a single subject
func NewCycleCommand(cycler ports.Cycler, subjectID string, dir domain.Direction) *CycleCommand {
	return &CycleCommand{
		cycler:    cycler,
		SubjectID: subjectID,
		Direction: dir,
	}
}

// NewCycleAllCommand creates a command that cycles every attached subject
func NewCycleAllCommand(cycler ports.Cycler, dir domain.Direction) *CycleCommand {
	return &CycleCommand{
		cycler:    cycler,
		Direction: dir,
		All:       true,
	}
}

// Validate checks if the cycle operation is valid
func (c *CycleCommand) Validate() error {
	if err := application.ValidateDirection(c.Direction); err != nil {
		return err
	}
	if c.All {
		return nil
	}
	return application.ValidateRequired("subjectID", c.SubjectID)
}

// Execute runs the cycle command and reports the resulting cursors
func (c *CycleCommand) Execute(ctx context.Context) (*CycleResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var err error
	var ids []string
	switch {
	case c.All && c.Direction == domain.Forward:
		err = c.cycler.CycleAllNext()
	case c.All:
		err = c.cycler.CycleAllPrevious()
	case c.Direction == domain.Forward:
		err = c.cycler.CycleNext(c.SubjectID)
	default:
		err = c.cycler.CyclePrevious(c.SubjectID)
	}
	if err != nil {
		return nil, err
	}

	if c.All {
		ids = c.cycler.Subjects()
	} else {
		ids = []string{c.SubjectID}
	}

	result := &CycleResult{Direction: c.Direction}
	for _, id := range ids {
		cursor, err := c.cycler.Cursor(id)
		if err != nil {
			return nil, err
		}
		result.Positions = append(result.Positions, SubjectPosition{SubjectID: id, Cursor: cursor})
	}
	return result, nil
}
