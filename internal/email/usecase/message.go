package usecase

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"

	"umailer-backend/internal/email/domain"
	"umailer-backend/pkg/slug"
)

// parsedMessage is a raw message with the headers the pipeline cares about
// already decoded. entity still holds the unread body parts.
type parsedMessage struct {
	entity  *message.Entity
	from    string
	subject string
	date    time.Time
}

func parseMessage(raw []byte) (*parsedMessage, error) {
	entity, err := message.Read(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, err
	}

	header := mail.Header{Header: entity.Header}

	// Address only, display name discarded.
	var from string
	if addrs, err := header.AddressList("From"); err == nil && len(addrs) > 0 {
		from = addrs[0].Address
	}

	subject, _ := header.Subject()

	date, err := header.Date()
	if err != nil {
		return nil, fmt.Errorf("invalid Date header: %w", err)
	}

	return &parsedMessage{entity: entity, from: from, subject: subject, date: date}, nil
}

// extractAttachments walks the message's leaf body parts and writes every
// qualifying one to disk. A part qualifies when it is not an image and
// carries a Content-Disposition header; inline non-image parts with a
// disposition qualify too, which keeps plain-text reports that some senders
// ship inline. Files already written are not removed when a later part
// fails.
func (u *emailUsecase) extractAttachments(parsed *parsedMessage, folder string, uid uint32) ([]domain.Attachment, error) {
	var attachments []domain.Attachment

	err := walkParts(parsed.entity, func(part *message.Entity) error {
		mediaType, _, _ := part.Header.ContentType()
		// Skips logos and other inline png/jpeg noise.
		if strings.HasPrefix(mediaType, "image/") {
			return nil
		}
		if part.Header.Get("Content-Disposition") == "" {
			return nil
		}

		original := partFilename(part)
		ext := filepath.Ext(original)
		base := strings.TrimSuffix(original, ext)

		filename := fmt.Sprintf(
			"%s_%s_%d_%s%s",
			parsed.date.Format(time.RFC3339), folder, uid, slug.Make(base, true), ext,
		)

		dir := filepath.Join(u.cfg.AttachmentsDir, parsed.from)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}

		// part.Body is already transfer-decoded.
		data, err := io.ReadAll(part.Body)
		if err != nil {
			return fmt.Errorf("failed to decode attachment %q: %w", original, err)
		}

		path := filepath.Join(dir, filename)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write attachment %s: %w", path, err)
		}

		attachments = append(attachments, domain.Attachment{Filepath: path})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return attachments, nil
}

// walkParts calls fn for every leaf part of the entity, in order. Multipart
// containers are descended into, never passed to fn.
func walkParts(entity *message.Entity, fn func(part *message.Entity) error) error {
	if mr := entity.MultipartReader(); mr != nil {
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			if err := walkParts(part, fn); err != nil {
				return err
			}
		}
	}
	return fn(entity)
}

func partFilename(part *message.Entity) string {
	if _, params, err := part.Header.ContentDisposition(); err == nil {
		if name := params["filename"]; name != "" {
			return name
		}
	}
	if _, params, err := part.Header.ContentType(); err == nil {
		if name := params["name"]; name != "" {
			return name
		}
	}
	return ""
}
