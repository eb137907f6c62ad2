package sqlite

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alphadiscovery/alpha/internal/domain"
	"github.com/alphadiscovery/alpha/internal/repository"
)

type threadRepo struct {
	db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) repository.ThreadRepository {
	return &threadRepo{db: db}
}

func (r *threadRepo) Create(ctx context.Context, thread *domain.Thread) error {
	return r.db.WithContext(ctx).Create(thread).Error
}

func (r *threadRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
	var thread domain.Thread
	if err := r.db.WithContext(ctx).Preload("Messages").First(&thread, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.NoThreadError{}
		}
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepo) List(ctx context.Context, limit int) ([]*domain.Thread, error) {
	var threads []*domain.Thread
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&threads).Error; err != nil {
		return nil, err
	}
	return threads, nil
}

func (r *threadRepo) GetMostRecent(ctx context.Context) (*domain.Thread, error) {
	var thread domain.Thread
	if err := r.db.WithContext(ctx).Order("created_at DESC").First(&thread).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.NoThreadError{}
		}
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepo) FindByPartialID(ctx context.Context, partialID string) (*domain.Thread, error) {
	var thread domain.Thread
	partialID = strings.ToLower(partialID)
	if err := r.db.WithContext(ctx).
		Where("LOWER(CAST(id AS TEXT)) LIKE ?", partialID+"%").
		First(&thread).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.NoThreadError{}
		}
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepo) AddMessage(ctx context.Context, threadID uuid.UUID, msg *domain.Message) error {
	msg.ThreadID = threadID
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *threadRepo) GetMessages(ctx context.Context, threadID uuid.UUID) ([]domain.Message, error) {
	var messages []domain.Message
	if err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
