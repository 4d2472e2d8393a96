package entity

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrChannelNotFound     = errors.New("channel not found")
	ErrVideoNotFound       = errors.New("video not found")
	ErrInvalidUsername     = errors.New("username must not be empty")
	ErrInvalidChannelID    = errors.New("invalid channel id")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailTaken          = errors.New("user with this email already exists")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrNotOwner            = errors.New("you can only modify your own videos")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrSelfSubscription    = errors.New("cannot subscribe to your own channel")
	ErrAlreadySubscribed   = errors.New("already subscribed")
)
