package repository

import "umailer-backend/internal/email/domain"

// EmailRepository defines the storage operations for downloaded emails.
type EmailRepository interface {
	// Create persists an email together with its attachments in one
	// transaction. Fails if an email with the same (folder, uid) already
	// exists.
	Create(email *domain.Email) error
	// GetByUID finds an email by folder name and server UID. Returns
	// (nil, nil) when no such email exists.
	GetByUID(folderName string, uid uint32) (*domain.Email, error)
	// GetByID finds an email by its database id. Returns (nil, nil) when
	// no such email exists.
	GetByID(id int64) (*domain.Email, error)
}
