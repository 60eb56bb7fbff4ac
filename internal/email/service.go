package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/komalrathore0521/BookVenue/internal/logger"
	"github.com/komalrathore0521/BookVenue/internal/metrics"
	"github.com/redis/go-redis/v9"
)

const (
	queueKey  = "bookvenue:emails"
	failedKey = "bookvenue:emails:failed"

	maxTries = 3

	typeBookingConfirmation = "booking_confirmation"
)

type EmailJob struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Service struct {
	redis      *redis.Client
	from       string
	fromName   string
	smtpHost   string
	smtpPort   string
	smtpUser   string
	smtpPass   string
	retryDelay time.Duration
	deliver    func(job EmailJob) error
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	s := &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:       fromEmail,
		fromName:   fromName,
		smtpHost:   smtpHost,
		smtpPort:   smtpPort,
		smtpUser:   smtpUser,
		smtpPass:   smtpPass,
		retryDelay: 5 * time.Second,
	}
	s.deliver = s.sendNow
	return s
}

// Send queues a message for the background worker.
func (s *Service) Send(ctx context.Context, emailType, to, name, subject, body string) error {
	job := EmailJob{
		Type:    emailType,
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal email job: %w", err)
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		metrics.RecordEmail(emailType, "queue_error")
		return fmt.Errorf("failed to queue email to %s: %w", to, err)
	}

	metrics.RecordEmail(emailType, "queued")
	logger.Info("email queued", "type", emailType, "to", to)
	return nil
}

// SendBookingConfirmation queues the confirmation for a new booking.
func (s *Service) SendBookingConfirmation(ctx context.Context, to, name, venueName, details string, date time.Time) error {
	subject := "Booking Confirmed - " + venueName
	body := fmt.Sprintf(`Hi %s,

Your booking is confirmed!

Venue: %s
Date: %s
%s

Thank you for booking with us.

- %s`, name, venueName, date.Format("Mon, Jan 2, 2006"), details, s.fromName)

	return s.Send(ctx, typeBookingConfirmation, to, name, subject, body)
}

// Start drains the queue until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Error("bad email job", "error", err)
		return
	}

	job.Tries++
	if err := s.deliver(job); err != nil {
		logger.Error("failed to send email", "to", job.To, "attempt", job.Tries, "error", err)

		if job.Tries < maxTries {
			s.requeue(ctx, job)
		} else {
			s.saveFailed(ctx, job, err)
		}
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Info("email sent", "to", job.To, "attempt", job.Tries)
}

func (s *Service) requeue(ctx context.Context, job EmailJob) {
	if s.retryDelay > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(s.retryDelay):
		}
	}

	data, _ := json.Marshal(job)
	if err := s.redis.LPush(context.Background(), queueKey, string(data)).Err(); err != nil {
		logger.Error("failed to requeue email", "to", job.To, "error", err)
		return
	}
	metrics.RecordEmail(job.Type, "retried")
}

func (s *Service) sendNow(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(ctx context.Context, job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.WithoutCancel(ctx), failedKey, string(data))

	metrics.RecordEmail(job.Type, "failed")
	logger.Error("email moved to failed queue", "to", job.To, "tries", job.Tries)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	metrics.EmailQueueLength.Set(float64(length))
	return length
}

func (s *Service) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

func (s *Service) Close() error {
	return s.redis.Close()
}
