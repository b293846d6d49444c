package exceptions

var ErrInvalidJSON = NewValidation("invalid JSON payload")
