package notifications

import (
	"os"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender delivers one text message.
type SMSSender interface {
	Send(phoneNumber, message string) error
}

// TwilioSender sends SMS through the Twilio REST API.
type TwilioSender struct{}

func (s *TwilioSender) Send(phoneNumber, message string) error {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: os.Getenv("TWILIO_ACCOUNT_SID"),
		Password: os.Getenv("TWILIO_AUTHTOKEN"),
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(phoneNumber)
	params.SetFrom(os.Getenv("TWILIO_PHONENUMBER"))
	params.SetBody(message)

	_, err := client.Api.CreateMessage(params)
	return err
}
