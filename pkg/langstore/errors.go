package langstore

import "errors"

var (
	ErrEmptyConnectionURL = errors.New("langstore: empty redis connection URL")
	ErrFailedToParseURL   = errors.New("langstore: failed to parse redis connection URL")
	ErrConnectionFailed   = errors.New("langstore: failed to connect to redis")
	ErrHealthcheckFailed  = errors.New("langstore: redis healthcheck failed")
	ErrEmptyScope         = errors.New("langstore: scope cannot be empty")
)
