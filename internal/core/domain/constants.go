package domain

import "errors"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrEmptyCorpus        = errors.New("no jokes available")

	ErrResourceMissing = errors.New("joke file missing")
	ErrDecode          = errors.New("joke file malformed")
	ErrNetwork         = errors.New("fetching page failed")
	ErrSchemaDrift     = errors.New("no jokes found in page")
	ErrPersist         = errors.New("writing joke file failed")
)
