package leave

import "errors"

var (
	ErrLeaveNotFound         = errors.New("leave record not found")
	ErrLeaveAlreadyProcessed = errors.New("leave request has already been processed")
	ErrInvalidStatus         = errors.New("status must be pending, approved or rejected")
)
