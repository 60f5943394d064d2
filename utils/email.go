package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// WinnerNotificationData dados para o email de ganhador
type WinnerNotificationData struct {
	ParticipantName string
	PromotionName   string
	RadioName       string
	DrawDate        string
}

var winnerTemplate = template.Must(template.New("winner").Parse(`
<html>
<body>
  <p>Olá {{.ParticipantName}},</p>
  <p>Parabéns! Você foi sorteado(a) na promoção <strong>{{.PromotionName}}</strong>
  da {{.RadioName}} (sorteio de {{.DrawDate}}).</p>
  <p>A equipe da rádio entrará em contato pelo telefone cadastrado.</p>
</body>
</html>
`))

// SendWinnerNotificationEmail envia o aviso de premiação (async,
// para não segurar a resposta da execução do sorteio)
func SendWinnerNotificationEmail(to string, data WinnerNotificationData) {
	go func() {
		var body bytes.Buffer
		if err := winnerTemplate.Execute(&body, data); err != nil {
			log.Printf("erro ao renderizar email de ganhador: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		if host == "" {
			// SMTP não configurado (dev/teste)
			return
		}

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Você ganhou na promoção "+data.PromotionName)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("erro ao enviar email de ganhador: %v", err)
		}
	}()
}
