package mail

type ConfirmationEmailData struct {
	Name     string
	Industry string
	Body     string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
