package postgresadapter

import (
	"context"
	"errors"
	"log/slog"

	"noteboard/contexts/notes/post-service/domain/entities"
	"noteboard/contexts/notes/post-service/ports"

	"gorm.io/gorm"
)

type postModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Title    string `gorm:"not null"`
	Content  string `gorm:"not null"`
	UserID   int64  `gorm:"column:user_id;not null"`
	AuthorID int64  `gorm:"column:author_id;not null"`
}

func (postModel) TableName() string { return "posts" }

func (m postModel) toEntity() entities.Post {
	return entities.Post{
		ID:       m.ID,
		Title:    m.Title,
		Content:  m.Content,
		UserID:   m.UserID,
		AuthorID: m.AuthorID,
	}
}

// Repository is the PostgreSQL post repository, selected when a DSN is
// configured. author_id is written once at insert and never updated.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&postModel{})
}

func (r *Repository) ListAll(ctx context.Context) ([]entities.Post, error) {
	var rows []postModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Post, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (entities.Post, bool, error) {
	var row postModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Post{}, false, nil
		}
		return entities.Post{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) Create(ctx context.Context, post entities.Post) (entities.Post, error) {
	row := postModel{
		Title:    post.Title,
		Content:  post.Content,
		UserID:   post.UserID,
		AuthorID: post.AuthorID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Post{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) Update(ctx context.Context, id int64, update ports.PostUpdate) (entities.Post, bool, error) {
	result := r.db.WithContext(ctx).
		Model(&postModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":   update.Title,
			"content": update.Content,
			"user_id": update.UserID,
		})
	if result.Error != nil {
		return entities.Post{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Post{}, false, nil
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&postModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
