package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	model "task-tracker.com/task-tracker/pkg/models"
)

// ErrTaskNotFound distinguishes a missing parent task from a missing comment.
var ErrTaskNotFound = fmt.Errorf("task %w", ErrNotFound)

type CommentRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db, now: utcNow}
}

func (r *CommentRepository) ListByTask(ctx context.Context, taskID uint) ([]model.Comment, error) {
	comments := []model.Comment{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireTask(tx, taskID); err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", taskID).Order("id asc").Find(&comments).Error; err != nil {
			return fmt.Errorf("list comments of task %d: %w", taskID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *CommentRepository) Create(ctx context.Context, taskID uint, content string, author *string) (*model.Comment, error) {
	now := r.now()
	comment := &model.Comment{
		TaskID:    taskID,
		Content:   content,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireTask(tx, taskID); err != nil {
			return err
		}
		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("create comment on task %d: %w", taskID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// Update mirrors TaskRepository.Update for a comment owned by taskID.
func (r *CommentRepository) Update(
	ctx context.Context,
	taskID, commentID uint,
	apply func(*model.Comment) error,
) (*model.Comment, error) {
	var updated *model.Comment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comment, err := findComment(tx, taskID, commentID)
		if err != nil {
			return err
		}

		if err := apply(comment); err != nil {
			return err
		}
		comment.UpdatedAt = nextTimestamp(r.now(), comment.UpdatedAt)

		res := tx.Model(&model.Comment{}).
			Where("id = ? AND task_id = ?", comment.ID, taskID).
			Updates(map[string]interface{}{
				"content":    comment.Content,
				"author":     comment.Author,
				"updated_at": comment.UpdatedAt,
			})
		if res.Error != nil {
			return fmt.Errorf("update comment %d: %w", commentID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		updated = comment
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *CommentRepository) Delete(ctx context.Context, taskID, commentID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findComment(tx, taskID, commentID); err != nil {
			return err
		}

		res := tx.Where("id = ? AND task_id = ?", commentID, taskID).Delete(&model.Comment{})
		if res.Error != nil {
			return fmt.Errorf("delete comment %d: %w", commentID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// RequireTask returns ErrTaskNotFound unless the task exists.
func (r *CommentRepository) RequireTask(ctx context.Context, taskID uint) error {
	return requireTask(r.db.WithContext(ctx), taskID)
}

func requireTask(db *gorm.DB, taskID uint) error {
	if _, err := findTask(db, taskID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}

// findComment checks the parent task first so that callers can tell a
// missing task from a comment that is missing or owned by another task.
func findComment(db *gorm.DB, taskID, commentID uint) (*model.Comment, error) {
	if err := requireTask(db, taskID); err != nil {
		return nil, err
	}

	var comment model.Comment
	err := db.Where("id = ? AND task_id = ?", commentID, taskID).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find comment %d: %w", commentID, err)
	}
	return &comment, nil
}
