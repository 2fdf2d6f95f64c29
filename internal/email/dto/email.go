package dto

import "umailer-backend/internal/email/domain"

// DownloadResponse is returned by both download endpoints. Emails holds
// every message matched by the request, previously known ones included;
// the counter only covers messages persisted by this request.
type DownloadResponse struct {
	NumberOfNewlyDownloadedEmails int             `json:"number_of_newly_downloaded_emails"`
	Emails                        []*domain.Email `json:"emails"`
}
