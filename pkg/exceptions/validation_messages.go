package exceptions

var (
	ErrTitleRequired   = NewValidation("'title' is required")
	ErrTitleEmpty      = NewValidation("'title' cannot be empty")
	ErrTitleTooLong    = NewValidation("'title' must be <= 255 characters")
	ErrContentRequired = NewValidation("'content' is required")
	ErrContentEmpty    = NewValidation("'content' cannot be empty")
	ErrContentTooLong  = NewValidation("'content' must be <= 1000 characters")
	ErrAuthorTooLong   = NewValidation("'author' must be <= 120 characters")
)
