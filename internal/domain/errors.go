package domain

import "errors"

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrTokenNotFound = errors.New("token not found")
)
