package email

// Config holds delivery configuration. The Postmark tokens are optional;
// without them NewSender returns the log-only sender. SenderEmail
// establishes the From identity of all outbound report mail.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"REPORT_SENDER_EMAIL"`
	ReplyToEmail         string `env:"REPORT_REPLY_TO_EMAIL"`
}

// configured reports whether the config is complete enough for Postmark.
func (c Config) configured() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != "" && c.SenderEmail != ""
}
