package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidLeaveType             = errors.New("invalid leave type")
	ErrInvalidStatus                = errors.New("invalid leave status")
)
