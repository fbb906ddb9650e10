package mailing

import (
	"foodgram-backend/internal/utils"
	"gopkg.in/gomail.v2"
	"io"
	"strconv"
)

type (
	Mailer interface {
		SendMail(toEmail string, subject string, body string, attachments ...Attachment) error
	}

	Attachment struct {
		FileName string
		Content  []byte
	}

	MailConfig struct {
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	smtpMailer struct {
		config MailConfig
	}
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func NewMailer() Mailer {
	return &smtpMailer{config: LoadMailConfig()}
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string, attachments ...Attachment) error {
	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return err
	}

	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(BuildMessage(m.config, toEmail, subject, body, attachments...))
}

func BuildMessage(config MailConfig, toEmail string, subject string, body string, attachments ...Attachment) *gomail.Message {
	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", config.SMTPEmail, config.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	for _, attachment := range attachments {
		content := attachment.Content
		mailer.Attach(attachment.FileName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}
	return mailer
}
