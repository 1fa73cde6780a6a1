package filter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/gavinalvarezz/PhishBotAgent/internal/config"
	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
	"github.com/gavinalvarezz/PhishBotAgent/internal/utils"
	"go.uber.org/zap"
)

// relayFunc delivers a processed message to the next hop
type relayFunc func(sender string, recipients []string, data []byte) error

// SMTPFilter implements a Postfix style content filter. Each message is
// scanned, annotated with score headers and relayed to the next hop.
type SMTPFilter struct {
	service        *core.ScanService
	processor      *utils.TextProcessor
	logger         *zap.Logger
	listenAddr     string
	server         *smtp.Server
	blockPhishing  bool
	blockThreshold int
	headers        config.HeadersConfig
	relayAddr      string
	relayEnabled   bool
	subjectPrefix  string
	modifySubject  bool
	readTimeout    time.Duration
	writeTimeout   time.Duration
	relay          relayFunc
}

// NewSMTPFilter creates a new SMTP content filter
func NewSMTPFilter(
	service *core.ScanService,
	processor *utils.TextProcessor,
	logger *zap.Logger,
	cfg config.ServerConfig,
) *SMTPFilter {
	prefix := cfg.SubjectPrefix
	if prefix == "" && cfg.ModifySubject {
		prefix = "[PHISHING?] "
	}

	f := &SMTPFilter{
		service:        service,
		processor:      processor,
		logger:         logger,
		listenAddr:     cfg.ListenAddress,
		blockPhishing:  cfg.BlockPhishing,
		blockThreshold: cfg.BlockThreshold,
		headers:        cfg.Headers,
		relayAddr:      cfg.Relay.Address,
		relayEnabled:   cfg.Relay.Enabled,
		subjectPrefix:  prefix,
		modifySubject:  cfg.ModifySubject,
		readTimeout:    cfg.ReadTimeout,
		writeTimeout:   cfg.WriteTimeout,
	}
	f.relay = f.sendToRelay
	return f
}

// Start starts the SMTP listener
func (f *SMTPFilter) Start() error {
	f.server = smtp.NewServer(&smtpBackend{filter: f})

	f.server.Addr = f.listenAddr
	f.server.Domain = "localhost"
	f.server.ReadTimeout = f.readTimeout
	f.server.WriteTimeout = f.writeTimeout
	f.server.MaxMessageBytes = 30 * 1024 * 1024
	f.server.MaxRecipients = 50

	f.logger.Info("SMTP filter starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil && !errors.Is(err, smtp.ErrServerClosed) {
			f.logger.Error("SMTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the SMTP listener
func (f *SMTPFilter) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// ProcessEmail scans a raw message without going through SMTP
func (f *SMTPFilter) ProcessEmail(ctx context.Context, raw string) (*core.Report, error) {
	return f.scan(ctx, []byte(raw))
}

func (f *SMTPFilter) scan(ctx context.Context, raw []byte) (*core.Report, error) {
	text, err := FlattenMessage(raw)
	if err != nil {
		f.logger.Debug("Falling back to raw message text", zap.Error(err))
		text = string(raw)
	}
	return f.service.Scan(ctx, f.processor.ProcessText(text))
}

func (f *SMTPFilter) shouldBlock(report *core.Report) bool {
	return f.blockPhishing && report.Result.Score >= f.blockThreshold
}

// annotate prepends the score headers and optionally tags the subject
func (f *SMTPFilter) annotate(raw []byte, report *core.Report, scanErr error) []byte {
	var out bytes.Buffer

	if scanErr != nil {
		fmt.Fprintf(&out, "X-PhishBot-Error: %s\r\n", scanErr.Error())
	} else {
		fmt.Fprintf(&out, "%s: %d\r\n", f.headers.Score, report.Result.Score)
		fmt.Fprintf(&out, "%s: %s\r\n", f.headers.Tier, report.Advice.Tier)
		fmt.Fprintf(&out, "%s: %s\r\n", f.headers.Reason, sanitizeHeaderValue(Reason(report.Result)))
	}

	head, body := splitHeader(raw)
	if scanErr == nil && f.modifySubject && f.subjectPrefix != "" && report.Advice.Tier != core.TierSafe {
		head = prefixSubject(head, f.subjectPrefix)
	}

	out.Write(head)
	out.Write(body)
	return out.Bytes()
}

// prefixSubject rewrites the Subject header of a header block, keeping folded
// continuation lines
func prefixSubject(head []byte, prefix string) []byte {
	lines := bytes.SplitAfter(head, []byte("\n"))
	if n := len(lines); n > 0 && len(lines[n-1]) == 0 {
		lines = lines[:n-1]
	}

	for i, line := range lines {
		name, value, ok := bytes.Cut(line, []byte(":"))
		if !ok || !strings.EqualFold(string(name), "Subject") {
			continue
		}
		value = bytes.TrimLeft(value, " \t")
		if bytes.HasPrefix(value, []byte(prefix)) {
			return head
		}
		lines[i] = append([]byte("Subject: "+prefix), value...)
		return bytes.Join(lines, nil)
	}

	// no subject header, insert one ahead of the blank separator line
	subject := []byte("Subject: " + strings.TrimSpace(prefix) + "\r\n")
	n := len(lines)
	if n > 0 && len(bytes.TrimSpace(lines[n-1])) == 0 {
		out := make([][]byte, 0, n+1)
		out = append(out, lines[:n-1]...)
		out = append(out, subject, lines[n-1])
		return bytes.Join(out, nil)
	}
	if len(head) > 0 && !bytes.HasSuffix(head, []byte("\n")) {
		head = append(head, '\r', '\n')
	}
	return append(head, subject...)
}

func sanitizeHeaderValue(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}

// sendToRelay delivers the processed message to the next hop using go-smtp
func (f *SMTPFilter) sendToRelay(sender string, recipients []string, data []byte) error {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", f.relayAddr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to relay: %w", err)
	}

	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}

	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	recipientOK := false
	for _, recipient := range recipients {
		if err := c.Rcpt(recipient, nil); err != nil {
			f.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err))
			continue
		}
		recipientOK = true
	}
	if !recipientOK {
		return errors.New("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send email data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		// already delivered
		f.logger.Warn("QUIT command failed", zap.Error(err))
	}

	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	filter *SMTPFilter
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{filter: b.filter}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	filter     *SMTPFilter
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = nil
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data scans, annotates and relays one message
func (s *smtpSession) Data(r io.Reader) error {
	f := s.filter

	raw, err := io.ReadAll(r)
	if err != nil {
		f.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	report, scanErr := f.scan(ctx, raw)
	if scanErr != nil {
		// scan failures never bounce mail
		f.logger.Error("Failed to scan email",
			zap.Error(scanErr),
			zap.String("sender", s.sender))
	} else if f.shouldBlock(report) {
		f.logger.Info("Rejecting phishing email",
			zap.String("from", s.sender),
			zap.Int("score", report.Result.Score),
			zap.String("reason", Reason(report.Result)))
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 7, 1},
			Message:      "Rejected as phishing (score: " + strconv.Itoa(report.Result.Score) + ")",
		}
	}

	annotated := f.annotate(raw, report, scanErr)

	if f.relayEnabled {
		if err := f.relay(s.sender, s.recipients, annotated); err != nil {
			f.logger.Error("Failed to relay email",
				zap.Error(err),
				zap.String("sender", s.sender))
			return err
		}
	} else {
		f.logger.Warn("Relay disabled, message dropped after scanning")
	}

	if report != nil {
		f.logger.Info("Processed email",
			zap.String("from", s.sender),
			zap.String("id", report.ID),
			zap.Int("score", report.Result.Score),
			zap.String("tier", string(report.Advice.Tier)))
	}

	return nil
}

// Logout handles SMTP logout
func (s *smtpSession) Logout() error {
	return nil
}
