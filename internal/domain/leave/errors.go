package leave

import "errors"

var (
	ErrLeaveTypeNotFound       = errors.New("leave type not found")
	ErrLeaveTypeInactive       = errors.New("leave type is inactive")
	ErrLeaveRequestNotFound    = errors.New("leave request not found")
	ErrBalanceNotFound         = errors.New("leave balance not found")
	ErrInsufficientBalance     = errors.New("insufficient leave balance")
	ErrRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrAccruedBelowZero        = errors.New("adjustment would drive accrued below zero")
)
