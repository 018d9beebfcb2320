// Package contact delivers contact submissions. Real delivery is
// intentionally not the default: local and dev runs append submissions to
// a log file so maintainers can inspect them without any mail account.
package contact

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"citybeat/internal/domain"
)

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// SenderConfig holds configuration for creating a contact sender.
type SenderConfig struct {
	Provider    string // "ses" or "log" (default)
	LogFile     string
	ToAddress   string
	FromAddress string
	SES         SESConfig
}

// NewSender creates a contact sender from config. Provider "ses" sends via
// AWS SES; "log" or unknown appends submissions to a local log file.
func NewSender(config SenderConfig) domain.ContactSender {
	switch config.Provider {
	case "ses":
		awsCfg := aws.Config{
			Region: config.SES.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					config.SES.AccessKeyID,
					config.SES.SecretAccessKey,
					"",
				),
			),
		}
		return &sesSender{
			client:      ses.NewFromConfig(awsCfg),
			toAddress:   config.ToAddress,
			fromAddress: config.FromAddress,
		}
	case "log":
		return &logSender{path: config.LogFile}
	default:
		log.Printf("[CONTACT] Unknown provider %q, using log file", config.Provider)
		return &logSender{path: config.LogFile}
	}
}

// logSender appends submissions to a local log file.
type logSender struct {
	path string
}

func (s *logSender) Send(_ context.Context, sub domain.ContactSubmission) error {
	entry := fmt.Sprintf("[%s] FROM:%s <%s> SUBJECT:%s\n%s\n\n",
		time.Now().UTC().Format(time.RFC3339), sub.Name, sub.Email, sub.Subject, sub.Message)
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open contact log: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("append contact log: %w", err)
	}
	return nil
}

// sesSender forwards submissions to the maintainer address via AWS SES,
// with Reply-To set to the submitter so replies go to them.
type sesSender struct {
	client      *ses.Client
	toAddress   string
	fromAddress string
}

func (s *sesSender) Send(ctx context.Context, sub domain.ContactSubmission) error {
	body := fmt.Sprintf("From: %s <%s>\n\n%s", sub.Name, sub.Email, sub.Message)
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{s.toAddress},
		},
		ReplyToAddresses: []string{sub.Email},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String("[contact] " + sub.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(body),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}
	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("send contact email via SES: %w", err)
	}
	log.Printf("[CONTACT] Submission forwarded via SES. MessageID: %s", aws.ToString(result.MessageId))
	return nil
}
