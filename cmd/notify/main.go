package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/textgen"
	"github.com/xavierca1/ligue-leads/internal/infra/mail"
)

// The confirmation-send function as its own small service: POST /send with
// {name, email, industry}, one email out per successful call.
func main() {
	godotenv.Load()

	smtpPort, err := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if err != nil {
		smtpPort = 587
	}

	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), smtpPort,
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"),
	)

	drafter := textgen.NewClient(
		os.Getenv("TEXTGEN_API_KEY"),
		os.Getenv("TEXTGEN_API_URL"),
		os.Getenv("TEXTGEN_MODEL"),
	)

	confirmHandler := handlers.NewConfirmationHandler(drafter, mailSender)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "OPTIONS"},
	}))

	r.Post("/send", confirmHandler.HandleSend)

	port := ":8081"
	log.Printf("Confirmation function listening on %s", port)
	http.ListenAndServe(port, r)
}
