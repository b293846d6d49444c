package model

const (
	MaxTitleLength   = 255
	MaxContentLength = 1000
	MaxAuthorLength  = 120
)
