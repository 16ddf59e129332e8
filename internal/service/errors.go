package service

import (
	"errors"
	"fmt"
)

var (
	ErrRoleInUse      = errors.New("role is assigned to participants")
	ErrWorkspaceInUse = errors.New("workspace contains projects")

	ErrTemplateNotFound = errors.New("project template not found")
	ErrNotLoggedIn      = errors.New("no active session")
)

// GuardError is returned when a referential check blocks a destructive
// operation. No request was sent and state is unchanged. Message is meant
// for the end user.
type GuardError struct {
	Reason     error
	ID         string
	References int
	Message    string
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("%v: %s (%d references)", e.Reason, e.ID, e.References)
}

func (e *GuardError) Unwrap() error { return e.Reason }

func roleInUse(id string, refs int) *GuardError {
	return &GuardError{
		Reason:     ErrRoleInUse,
		ID:         id,
		References: refs,
		Message:    "Esta função está em uso e não pode ser excluída.",
	}
}

func workspaceInUse(id string, refs int) *GuardError {
	return &GuardError{
		Reason:     ErrWorkspaceInUse,
		ID:         id,
		References: refs,
		Message:    "Não é possível excluir um espaço de trabalho que contém projetos.",
	}
}
