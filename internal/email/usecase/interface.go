package usecase

import (
	"context"

	"umailer-backend/internal/email/domain"
	"umailer-backend/internal/email/dto"
)

// DownloadOptions controls one mailbox fetch.
type DownloadOptions struct {
	// OnlyUnread restricts the server-side search to unseen messages.
	OnlyUnread bool
	// IsReadonly selects the folder read-only; when false, every message
	// matched by the search is explicitly flagged as seen afterwards.
	IsReadonly bool
	// DateFrom and DateTo bound the window in YYYY-MM-DD form, both
	// inclusive. When either is empty the default window of the last 30
	// days through tomorrow is used.
	DateFrom string
	DateTo   string
	// FolderName defaults to INBOX.
	FolderName string
}

// EmailUsecase drives the download pipeline: connect, search, fetch,
// extract attachments, persist, and serve previously downloaded emails.
type EmailUsecase interface {
	DownloadEmails(ctx context.Context, opts DownloadOptions) (*dto.DownloadResponse, error)
	// DownloadEmailByUID fetches exactly one message by its server UID,
	// always read-only and without date validation.
	DownloadEmailByUID(ctx context.Context, uid uint32) (*dto.DownloadResponse, error)
	// GetEmailByID reads an already-downloaded email from the database.
	// Returns (nil, nil) when not found. No server interaction.
	GetEmailByID(id int64) (*domain.Email, error)
}
