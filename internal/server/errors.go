package server

import (
	"fmt"

	"focusboard/internal/board"
)

func errTaskNotFound(id string) error {
	return board.NotFoundError{Kind: "task", ID: id}
}

func errMissingField(name string) error {
	return fmt.Errorf("%s is required", name)
}
