package repository

import (
	"gorm.io/gorm"

	"umailer-backend/internal/email/domain"
)

// emailRepository implements EmailRepository interface
type emailRepository struct {
	db *gorm.DB
}

// NewEmailRepository creates a new instance of emailRepository
func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepository{
		db: db,
	}
}

// Create inserts the email row and its attachment rows in one transaction.
// The unique index on (folder_name, uid) is the last line of defense when
// two requests race on the same unseen message: the loser gets an error
// here instead of inserting a duplicate.
func (r *emailRepository) Create(email *domain.Email) error {
	return r.db.Create(email).Error
}

func (r *emailRepository) GetByUID(folderName string, uid uint32) (*domain.Email, error) {
	var email domain.Email
	err := r.db.Preload("Attachments").
		Where("folder_name = ? AND uid = ?", folderName, uid).
		First(&email).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

func (r *emailRepository) GetByID(id int64) (*domain.Email, error) {
	var email domain.Email
	err := r.db.Preload("Attachments").First(&email, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}
