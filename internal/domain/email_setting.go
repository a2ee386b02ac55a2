package domain

import "time"

// MailProtocol is the protocol a mailbox is polled or sent with.
type MailProtocol string

const (
	MailProtocolIMAP MailProtocol = "IMAP"
	MailProtocolPOP3 MailProtocol = "POP3"
	MailProtocolSMTP MailProtocol = "SMTP"
)

// EmailSetting configures one inbound or outbound mailbox.
type EmailSetting struct {
	ID            string
	Mailbox       string
	Host          string
	Port          int
	Protocol      MailProtocol
	UseTLS        bool
	DepartmentID  *string
	Active        bool
	LastCheckedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
