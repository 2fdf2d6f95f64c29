package domain

import "time"

// Email is one downloaded message. A (folder_name, uid) pair identifies a
// message on the server: UIDs are unique within a folder only, two messages
// in different folders may share the same UID. The composite unique index is
// what prevents the same message from being downloaded twice, even when two
// fetch requests race.
type Email struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	FolderName string `json:"folder_name" gorm:"index;uniqueIndex:idx_emails_folder_uid;not null"`
	UID        uint32 `json:"uid" gorm:"index;uniqueIndex:idx_emails_folder_uid;not null"`

	EmailFrom string    `json:"email_from" gorm:"index"`
	Subject   string    `json:"subject"`
	Date      time.Time `json:"date" gorm:"index"`

	Attachments []Attachment `json:"attachments" gorm:"foreignKey:EmailID"`

	IsProcessed bool `json:"is_processed" gorm:"default:false"`
	// Reserved for batch processing runs, not written by the download flow.
	ProcessingSessionID *int64 `json:"processing_session_id"`
}

// Attachment is a file extracted from an email body part and written to disk.
// Rows are created together with their parent email and never updated.
type Attachment struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	EmailID  int64  `json:"email_id" gorm:"index"`
	Filepath string `json:"filepath" gorm:"uniqueIndex"`
}
