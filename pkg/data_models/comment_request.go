package dto

type CreateCommentRequest struct {
	Content *string `json:"content"`
	Author  *string `json:"author,omitempty"`
}

type UpdateCommentRequest struct {
	Content OptionalString `json:"content,omitzero"`
	Author  OptionalString `json:"author,omitzero"`
}
