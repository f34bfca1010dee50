package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// apiError carries the HTTP status of a failed Discord API call so the
// retry executor can classify it.
type apiError struct {
	status int
	err    error
}

func (e *apiError) Error() string {
	return fmt.Sprintf("discord api: status %d: %v", e.status, e.err)
}

func (e *apiError) Unwrap() error { return e.err }

// HTTPStatus satisfies the retry package's classifier.
func (e *apiError) HTTPStatus() int { return e.status }

// wrapErr attaches the REST status to the error when one is available.
// Errors without a status stay as-is and classify as retryable.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Response != nil {
		return &apiError{status: rest.Response.StatusCode, err: err}
	}
	return err
}
