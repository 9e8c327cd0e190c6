package cli

import (
	"errors"
	"fmt"
)

var errMissingCredentials = errors.New("no credentials; pass --email/--password or set TASKDECK_EMAIL and TASKDECK_PASSWORD")

type confirmationMismatchError struct{}

func (confirmationMismatchError) Error() string {
	return "password confirmation does not match"
}

type deleteNotConfirmedError struct {
	id int
}

func (e deleteNotConfirmedError) Error() string {
	return fmt.Sprintf("refusing to delete task %d without --yes", e.id)
}
