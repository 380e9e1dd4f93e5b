package pkg

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // 发件人邮箱
	Password string // 授权码/密码
	From     string // 显示的发件人，可与 Username 相同
}

// Mailer 邮件发送能力
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type SMTPMailer struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return &SMTPMailer{cfg: cfg, dialer: d}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	// gomail 不支持 context，只能在拨号前检查
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

// ContactMail 联系消息邮件内容
type ContactMail struct {
	Name    string
	Email   string
	Subject string
	Body    string
	UserID  string
	SentAt  time.Time
}

var plainText = bluemonday.StrictPolicy()

// 邮件头是纯文本，只去掉换行防止头注入
var headerLine = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func ContactMailSubject(subject string) string {
	return "Nuevo mensaje de contacto: " + headerLine.Replace(subject)
}

const VerificationMailSubject = "Código de verificación"

// VerificationCodeHTML 验证码邮件正文
func VerificationCodeHTML(action, code string, ttl time.Duration) string {
	return fmt.Sprintf(`<p>Hola,</p><p>Estás realizando la acción <b>%s</b>. Tu código de verificación es: <b style="font-size:18px;">%s</b>.</p><p>Es válido durante %d minutos. No lo compartas con nadie.</p>`,
		plainText.Sanitize(action), code, int(ttl.Minutes()))
}

// ContactMailHTML 用户输入全部转义后再拼接
func ContactMailHTML(m ContactMail) string {
	body := strings.ReplaceAll(plainText.Sanitize(m.Body), "\n", "<br>")
	return fmt.Sprintf(`
<h2>Nuevo mensaje de contacto</h2>
<p><strong>De:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Asunto:</strong> %s</p>
<p><strong>Fecha:</strong> %s</p>
<hr>
<h3>Mensaje:</h3>
<p>%s</p>
<hr>
<p><small>ID Usuario: %s</small></p>
`,
		plainText.Sanitize(m.Name),
		plainText.Sanitize(m.Email),
		plainText.Sanitize(m.Subject),
		m.SentAt.Format("02/01/2006 15:04:05"),
		body,
		plainText.Sanitize(m.UserID),
	)
}
