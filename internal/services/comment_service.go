package services

import (
	"context"

	repository "task-tracker.com/task-tracker/internal/repositories"
	dto "task-tracker.com/task-tracker/pkg/data_models"
	"task-tracker.com/task-tracker/pkg/exceptions"
	model "task-tracker.com/task-tracker/pkg/models"
)

type CommentService struct {
	repo *repository.CommentRepository
}

func NewCommentService(repo *repository.CommentRepository) *CommentService {
	return &CommentService{repo: repo}
}

// RequireTask fails with ErrTaskNotFound unless the task exists. Handlers call
// it before decoding a body so a missing task wins over a malformed payload.
func (s *CommentService) RequireTask(ctx context.Context, taskID uint) error {
	return translate(s.repo.RequireTask(ctx, taskID), exceptions.ErrTaskNotFound)
}

func (s *CommentService) ListComments(ctx context.Context, taskID uint) ([]model.Comment, error) {
	comments, err := s.repo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, translate(err, exceptions.ErrTaskNotFound)
	}
	return comments, nil
}

func (s *CommentService) CreateComment(ctx context.Context, taskID uint, req dto.CreateCommentRequest) (*model.Comment, error) {
	if err := s.RequireTask(ctx, taskID); err != nil {
		return nil, err
	}

	content, err := normalizeContent(req.Content, exceptions.ErrContentRequired)
	if err != nil {
		return nil, err
	}
	author, err := normalizeAuthor(req.Author)
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.Create(ctx, taskID, content, author)
	if err != nil {
		return nil, translate(err, exceptions.ErrTaskNotFound)
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(
	ctx context.Context,
	taskID, commentID uint,
	req dto.UpdateCommentRequest,
) (*model.Comment, error) {
	comment, err := s.repo.Update(ctx, taskID, commentID, func(comment *model.Comment) error {
		if req.Content.Set {
			content, err := normalizeContent(req.Content.Value, exceptions.ErrContentEmpty)
			if err != nil {
				return err
			}
			comment.Content = content
		}
		if req.Author.Set {
			author, err := normalizeAuthor(req.Author.Value)
			if err != nil {
				return err
			}
			comment.Author = author
		}
		return nil
	})
	if err != nil {
		return nil, translate(err, exceptions.ErrCommentNotFound)
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, taskID, commentID uint) error {
	return translate(s.repo.Delete(ctx, taskID, commentID), exceptions.ErrCommentNotFound)
}
