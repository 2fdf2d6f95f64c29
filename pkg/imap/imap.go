package imap

import (
	"context"
	"fmt"
	"io"
	"strings"

	goimap "github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"

	"umailer-backend/internal/email/domain"
)

// TransportError marks failures coming from the IMAP connection itself
// (dial, login, folder select, search, fetch), as opposed to parsing or
// storage failures further down the pipeline.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// Service implements domain.MailProvider on top of go-imap. Each Connect
// call opens its own TLS connection; nothing is shared between sessions.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) Connect(ctx context.Context, account domain.MailAccount, folder string, readonly bool) (domain.MailSession, error) {
	addr := account.Host
	if !strings.Contains(addr, ":") {
		addr += ":993"
	}

	c, err := client.DialTLS(addr, nil)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to connect to %s: %w", addr, err)}
	}

	if err := c.Login(account.Username, account.Password); err != nil {
		_ = c.Logout()
		return nil, &TransportError{Err: fmt.Errorf("failed to login as %s: %w", account.Username, err)}
	}

	if _, err := c.Select(folder, readonly); err != nil {
		_ = c.Logout()
		return nil, &TransportError{Err: fmt.Errorf("failed to select folder %s: %w", folder, err)}
	}

	return &session{c: c}, nil
}

type session struct {
	c *client.Client
}

func (s *session) Search(query domain.SearchQuery) ([]uint32, error) {
	criteria := goimap.NewSearchCriteria()
	if query.OnlyUnread {
		criteria.WithoutFlags = []string{goimap.SeenFlag}
	}
	criteria.Since = query.Since
	criteria.Before = query.Before

	uids, err := s.c.UidSearch(criteria)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to search: %w", err)}
	}
	return uids, nil
}

func (s *session) Fetch(uids []uint32) ([]domain.FetchedMessage, error) {
	if len(uids) == 0 {
		return nil, nil
	}

	seqset := new(goimap.SeqSet)
	seqset.AddNum(uids...)

	section := &goimap.BodySectionName{}
	items := []goimap.FetchItem{goimap.FetchUid, section.FetchItem()}

	ch := make(chan *goimap.Message, len(uids))
	done := make(chan error, 1)
	go func() {
		done <- s.c.UidFetch(seqset, items, ch)
	}()

	var messages []domain.FetchedMessage
	for msg := range ch {
		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		raw, err := io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("failed to read message %d: %w", msg.Uid, err)
		}
		messages = append(messages, domain.FetchedMessage{UID: msg.Uid, Body: raw})
	}

	if err := <-done; err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to fetch messages: %w", err)}
	}
	return messages, nil
}

func (s *session) MarkSeen(uids []uint32) error {
	if len(uids) == 0 {
		return nil
	}

	seqset := new(goimap.SeqSet)
	seqset.AddNum(uids...)

	item := goimap.FormatFlagsOp(goimap.AddFlags, true)
	flags := []interface{}{goimap.SeenFlag}
	if err := s.c.UidStore(seqset, item, flags, nil); err != nil {
		return &TransportError{Err: fmt.Errorf("failed to mark messages as seen: %w", err)}
	}
	return nil
}

func (s *session) Close() error {
	return s.c.Logout()
}
