// Package mailsync polls an IMAP mailbox and hands new messages to the
// mail ingestion service.
package mailsync

import (
	"context"
	"fmt"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/foodcrm/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// InboundMessage is a message pulled from the mailbox, decoded enough
// for ingestion. UID identifies the message within the mailbox so the
// caller can mark it seen once it is safely stored.
type InboundMessage struct {
	UID           uint32
	ProviderMsgID string
	Subject       string
	Sender        string
	Recipients    []string
	CC            []string
	InReplyTo     string
	SentAt        time.Time
	BodyText      string
	BodyHTML      string
}

// Fetcher pulls unseen messages from a mailbox. Messages stay unseen
// until MarkSeen is called for them, so a failed ingestion is refetched
// on the next poll.
type Fetcher interface {
	FetchUnseen(ctx context.Context, limit int) ([]InboundMessage, error)
	MarkSeen(ctx context.Context, uids []uint32) error
}

// IMAPFetcher implements Fetcher against an IMAP server over TLS
type IMAPFetcher struct {
	cfg    config.IMAPConfig
	logger *zap.Logger
}

// NewIMAPFetcher creates a new IMAPFetcher
func NewIMAPFetcher(cfg config.IMAPConfig, logger *zap.Logger) *IMAPFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IMAPFetcher{cfg: cfg, logger: logger}
}

// connect dials the server, logs in and selects the mailbox. Each call
// uses a fresh connection so a dead session never poisons later polls.
func (f *IMAPFetcher) connect() (*imapclient.Client, error) {
	addr := fmt.Sprintf("%s:%d", f.cfg.Host, f.cfg.Port)

	client, err := imapclient.DialTLS(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("imap dial %s: %w", addr, err)
	}

	if err := client.Login(f.cfg.Username, f.cfg.Password).Wait(); err != nil {
		client.Close()
		return nil, fmt.Errorf("imap login: %w", err)
	}

	if _, err := client.Select(f.cfg.Mailbox, nil).Wait(); err != nil {
		client.Close()
		return nil, fmt.Errorf("imap select %s: %w", f.cfg.Mailbox, err)
	}

	return client, nil
}

func (f *IMAPFetcher) disconnect(client *imapclient.Client) {
	if err := client.Logout().Wait(); err != nil {
		f.logger.Debug("imap logout failed", zap.Error(err))
	}
	client.Close()
}

// FetchUnseen fetches up to limit unseen messages and returns them
// decoded. The \Seen flag is left untouched; callers mark messages
// seen through MarkSeen once they are stored.
func (f *IMAPFetcher) FetchUnseen(ctx context.Context, limit int) ([]InboundMessage, error) {
	client, err := f.connect()
	if err != nil {
		return nil, err
	}
	defer f.disconnect(client)

	searchData, err := client.UIDSearch(&imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
	}, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("imap search unseen: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}
	if limit > 0 && len(uids) > limit {
		uids = uids[:limit]
	}

	uidSet := imap.UIDSetNum(uids...)

	bodySection := &imap.FetchItemBodySection{}
	fetchData, err := client.Fetch(uidSet, &imap.FetchOptions{
		Envelope:     true,
		InternalDate: true,
		BodySection:  []*imap.FetchItemBodySection{bodySection},
	}).Collect()
	if err != nil {
		return nil, fmt.Errorf("imap fetch: %w", err)
	}

	messages := make([]InboundMessage, 0, len(fetchData))
	for _, buf := range fetchData {
		msg, err := decodeMessage(buf, bodySection)
		if err != nil {
			f.logger.Warn("skipping undecodable message",
				zap.Uint32("uid", uint32(buf.UID)),
				zap.Error(err))
			continue
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

// MarkSeen flags the given messages as seen so the next poll skips
// them. Called only for messages that were stored or turned out to be
// duplicates of stored rows.
func (f *IMAPFetcher) MarkSeen(ctx context.Context, uids []uint32) error {
	if len(uids) == 0 {
		return nil
	}

	client, err := f.connect()
	if err != nil {
		return err
	}
	defer f.disconnect(client)

	imapUIDs := make([]imap.UID, len(uids))
	for i, uid := range uids {
		imapUIDs[i] = imap.UID(uid)
	}
	storeCmd := client.Store(imap.UIDSetNum(imapUIDs...), &imap.StoreFlags{
		Op:     imap.StoreFlagsAdd,
		Flags:  []imap.Flag{imap.FlagSeen},
		Silent: true,
	}, nil)
	if err := storeCmd.Close(); err != nil {
		return fmt.Errorf("imap store seen: %w", err)
	}
	return nil
}

// decodeMessage turns a fetched buffer into an InboundMessage
func decodeMessage(buf *imapclient.FetchMessageBuffer, section *imap.FetchItemBodySection) (InboundMessage, error) {
	env := buf.Envelope
	if env == nil {
		return InboundMessage{}, fmt.Errorf("message has no envelope")
	}
	if env.MessageID == "" {
		return InboundMessage{}, fmt.Errorf("message has no message id")
	}

	msg := InboundMessage{
		UID:           uint32(buf.UID),
		ProviderMsgID: env.MessageID,
		Subject:       env.Subject,
		SentAt:        env.Date,
	}
	if len(env.InReplyTo) > 0 {
		msg.InReplyTo = env.InReplyTo[0]
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = buf.InternalDate
	}

	if len(env.From) > 0 {
		msg.Sender = env.From[0].Addr()
	}
	for _, to := range env.To {
		msg.Recipients = append(msg.Recipients, to.Addr())
	}
	for _, cc := range env.Cc {
		msg.CC = append(msg.CC, cc.Addr())
	}

	raw := buf.FindBodySection(section)
	if len(raw) > 0 {
		text, html, err := parseBody(raw)
		if err != nil {
			return InboundMessage{}, fmt.Errorf("parse body: %w", err)
		}
		msg.BodyText = text
		msg.BodyHTML = html
	}

	return msg, nil
}
