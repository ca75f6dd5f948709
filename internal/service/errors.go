package service

import "errors"

// 业务错误，由handler映射为HTTP状态码
var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("incorrect email or password")
	ErrInactiveAccount     = errors.New("account is inactive")
	ErrWeakPassword        = errors.New("password must be at least 8 characters")
	ErrInvalidRole         = errors.New("invalid role")
	ErrAccountNotFound     = errors.New("account not found")
	ErrEmptyMessage        = errors.New("message must not be empty")
	ErrSelfRequest         = errors.New("cannot send a request to yourself")
	ErrSameRole            = errors.New("requests can only be sent between a user and a mentor")
	ErrReceiverNotFound    = errors.New("receiver not found")
	ErrActiveRequestExists = errors.New("there is already an active request to this receiver")
	ErrRequestNotFound     = errors.New("request not found or already processed")
	ErrEmptyName           = errors.New("name must not be empty")
	ErrMentorNotFound      = errors.New("mentor not found")
	ErrResumeNotFound      = errors.New("resume not found")
	ErrResumeAccessDenied  = errors.New("not authorized to access this resume")
	ErrResumeUpdateDenied  = errors.New("not authorized to update this resume")
)
