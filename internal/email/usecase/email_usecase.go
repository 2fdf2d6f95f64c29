package usecase

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"umailer-backend/internal/email/domain"
	"umailer-backend/internal/email/dto"
	"umailer-backend/internal/email/repository"
	"umailer-backend/pkg/config"
)

const (
	dateFormat    = "2006-01-02"
	defaultFolder = "INBOX"

	// Default window length when no explicit dates are requested.
	defaultDateIntervalDays = 30

	// Server-side SINCE/BEFORE filtering is date-only and servers disagree
	// on the boundaries, so the search window is widened on both sides and
	// every fetched message is re-validated against the exact window.
	coarseWindowSlackDays = 3
)

type emailUsecase struct {
	emailRepo repository.EmailRepository
	provider  domain.MailProvider
	cfg       *config.Config
	loc       *time.Location
	now       func() time.Time
}

// NewEmailUsecase creates the download usecase. loc is the reference
// timezone used for date-window resolution and validation.
func NewEmailUsecase(emailRepo repository.EmailRepository, provider domain.MailProvider, cfg *config.Config, loc *time.Location) EmailUsecase {
	return &emailUsecase{
		emailRepo: emailRepo,
		provider:  provider,
		cfg:       cfg,
		loc:       loc,
		now:       time.Now,
	}
}

// dateWindow is the exact accepted interval. validate is false on the
// by-UID path, where the fetch is exact and no filtering applies.
type dateWindow struct {
	from     time.Time
	to       time.Time
	validate bool
}

func (w dateWindow) rejects(date time.Time) bool {
	return w.validate && (date.Before(w.from) || date.After(w.to))
}

func (u *emailUsecase) DownloadEmails(ctx context.Context, opts DownloadOptions) (*dto.DownloadResponse, error) {
	folder := opts.FolderName
	if folder == "" {
		folder = defaultFolder
	}

	from, to, err := u.resolveDateWindow(opts.DateFrom, opts.DateTo)
	if err != nil {
		return nil, err
	}

	session, err := u.provider.Connect(ctx, u.account(), folder, opts.IsReadonly)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	uids, err := session.Search(domain.SearchQuery{
		OnlyUnread: opts.OnlyUnread,
		Since:      from.AddDate(0, 0, -coarseWindowSlackDays),
		Before:     to.AddDate(0, 0, coarseWindowSlackDays),
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"folder": folder, "matched": len(uids)}).Info("Searched mailbox")

	messages, err := session.Fetch(uids)
	if err != nil {
		return nil, err
	}

	response := &dto.DownloadResponse{Emails: []*domain.Email{}}
	window := dateWindow{from: from, to: to, validate: true}
	for _, msg := range messages {
		email, created, err := u.saveEmail(folder, msg, window)
		if err != nil {
			return nil, err
		}
		if email == nil {
			continue
		}
		if created {
			response.NumberOfNewlyDownloadedEmails++
		}
		response.Emails = append(response.Emails, email)
	}

	if !opts.IsReadonly {
		// Fetching already sets \Seen on most servers; this makes it
		// explicit. It flags every UID the search matched, including
		// messages the exact date window dropped above.
		if err := session.MarkSeen(uids); err != nil {
			return nil, err
		}
	}

	log.WithFields(log.Fields{
		"folder":           folder,
		"newly_downloaded": response.NumberOfNewlyDownloadedEmails,
		"returned":         len(response.Emails),
	}).Info("Finished downloading emails")

	return response, nil
}

func (u *emailUsecase) DownloadEmailByUID(ctx context.Context, uid uint32) (*dto.DownloadResponse, error) {
	session, err := u.provider.Connect(ctx, u.account(), defaultFolder, true)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	messages, err := session.Fetch([]uint32{uid})
	if err != nil {
		return nil, err
	}

	response := &dto.DownloadResponse{Emails: []*domain.Email{}}
	for _, msg := range messages {
		email, created, err := u.saveEmail(defaultFolder, msg, dateWindow{})
		if err != nil {
			return nil, err
		}
		if email == nil {
			continue
		}
		if created {
			response.NumberOfNewlyDownloadedEmails++
		}
		response.Emails = append(response.Emails, email)
	}

	return response, nil
}

func (u *emailUsecase) GetEmailByID(id int64) (*domain.Email, error) {
	return u.emailRepo.GetByID(id)
}

// saveEmail is the dedup gate plus attachment extractor for one raw
// message. It returns (nil, false, nil) when the window rejects the
// message, the existing record when the (folder, uid) pair is already
// known, and otherwise a freshly persisted record. The second return value
// reports whether a new record was created.
func (u *emailUsecase) saveEmail(folder string, msg domain.FetchedMessage, window dateWindow) (*domain.Email, bool, error) {
	parsed, err := parseMessage(msg.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse message %d: %w", msg.UID, err)
	}

	if window.rejects(parsed.date) {
		return nil, false, nil
	}

	// Already downloaded before: don't re-extract, don't re-write files.
	existing, err := u.emailRepo.GetByUID(folder, msg.UID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	attachments, err := u.extractAttachments(parsed, folder, msg.UID)
	if err != nil {
		return nil, false, err
	}

	email := &domain.Email{
		FolderName:  folder,
		UID:         msg.UID,
		EmailFrom:   parsed.from,
		Subject:     parsed.subject,
		Date:        parsed.date,
		Attachments: attachments,
	}
	if err := u.emailRepo.Create(email); err != nil {
		return nil, false, err
	}

	log.WithFields(log.Fields{
		"folder":      folder,
		"uid":         msg.UID,
		"from":        parsed.from,
		"attachments": len(attachments),
	}).Info("Downloaded new email")

	return email, true, nil
}

// resolveDateWindow turns the optional YYYY-MM-DD bounds into an exact
// [start-of-day, end-of-day] interval in the reference timezone. When
// either bound is missing, the window runs from 30 days ago through
// tomorrow.
func (u *emailUsecase) resolveDateWindow(dateFrom, dateTo string) (time.Time, time.Time, error) {
	if dateFrom == "" || dateTo == "" {
		now := u.now().In(u.loc)
		return startOfDay(now.AddDate(0, 0, -defaultDateIntervalDays)), endOfDay(now.AddDate(0, 0, 1)), nil
	}

	from, err := time.ParseInLocation(dateFormat, dateFrom, u.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date_from %q: expected YYYY-MM-DD", dateFrom)
	}
	to, err := time.ParseInLocation(dateFormat, dateTo, u.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date_to %q: expected YYYY-MM-DD", dateTo)
	}

	return startOfDay(from), endOfDay(to), nil
}

func (u *emailUsecase) account() domain.MailAccount {
	return domain.MailAccount{
		Host:     u.cfg.EmailHost,
		Username: u.cfg.EmailUsername,
		Password: u.cfg.EmailPassword,
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
