package models

import "errors"

var (
	ErrRedisConnection = errors.New("redis connection error")
	ErrRedisGet        = errors.New("redis get error")
	ErrRedisSet        = errors.New("redis set error")
	ErrRedisDelete     = errors.New("redis delete error")
)

// ErrUnauthenticated covers every session failure: missing, malformed,
// expired and bad-signature tokens all collapse into this one error so the
// response never reveals which check failed.
var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

var (
	ErrDatabaseConnection = errors.New("database connection error")
	ErrDatabaseQuery      = errors.New("database query error")
	ErrDatabaseInsert     = errors.New("database insert error")
	ErrDatabaseUpdate     = errors.New("database update error")
	ErrDatabaseDelete     = errors.New("database delete error")
	ErrRecordNotFound     = errors.New("record not found")
)

var (
	ErrInvalidParams      = errors.New("invalid parameters")
	ErrInvalidSessionTime = errors.New("focus session has no start time")
	ErrUserNotFound       = errors.New("user not found")
	ErrGenerationFailed   = errors.New("ai generation failed")
)
