package domain

import (
	"context"
	"time"
)

// MailAccount holds the credentials for one mail server login.
type MailAccount struct {
	Host     string
	Username string
	Password string
}

// SearchQuery is the server-side search sent on a selected folder. Since and
// Before carry date precision only; server-side date filtering is coarse, so
// callers widen the range and re-validate fetched messages themselves.
type SearchQuery struct {
	OnlyUnread bool
	Since      time.Time
	Before     time.Time
}

// FetchedMessage is one raw message as returned by the server.
type FetchedMessage struct {
	UID  uint32
	Body []byte
}

// MailSession is an authenticated connection with a folder selected. A
// session belongs to a single fetch request and must be closed on all exit
// paths.
type MailSession interface {
	// Search returns the UIDs matching the query.
	Search(query SearchQuery) ([]uint32, error)
	// Fetch downloads the raw bodies for the given UIDs.
	Fetch(uids []uint32) ([]FetchedMessage, error)
	// MarkSeen flags the given UIDs as read on the server.
	MarkSeen(uids []uint32) error
	Close() error
}

// MailProvider opens sessions against a mail server.
type MailProvider interface {
	Connect(ctx context.Context, account MailAccount, folder string, readonly bool) (MailSession, error)
}
