package dto

type CreateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description,omitempty"`
}

// UpdateTaskRequest only touches the fields present in the body.
type UpdateTaskRequest struct {
	Title       OptionalString `json:"title,omitzero"`
	Description OptionalString `json:"description,omitzero"`
}
