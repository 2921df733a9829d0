package conversation

import (
	"context"
	"errors"

	"github.com/eleven-am/voice-console/internal/shared"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Conversation{})
}

func (s *Store) Create(ctx context.Context, c *Conversation) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *Store) GetByID(ctx context.Context, id uint) (*Conversation, error) {
	var c Conversation
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &c, err
}

// GetLatestByCallID returns the newest report stored for the call. Providers
// may deliver the webhook more than once.
func (s *Store) GetLatestByCallID(ctx context.Context, callID string) (*Conversation, error) {
	var c Conversation
	err := s.db.WithContext(ctx).Where("call_id = ?", callID).Order("id DESC").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &c, err
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]*Conversation, error) {
	var out []*Conversation
	err := s.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}
