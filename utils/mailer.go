package utils

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var sesClient *ses.Client

func init() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("AWS config load failed: %v", err)
	}
	sesClient = ses.NewFromConfig(cfg)
}

// generic SES sender
func sendEmail(to string, subject string, htmlBody string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(htmlBody),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}

	_, err := sesClient.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// SendOTPEmail delivers a verification code to the recipient.
func SendOTPEmail(to string, code string) error {
	subject := "Your OTP Code - Wellness Buddy"
	body := fmt.Sprintf(`
<div style="max-width:600px;margin:0 auto;font-family:sans-serif">
  <h2>Wellness Buddy — Verification Code</h2>
  <p>Use the code below to complete your sign-in:</p>
  <p style="font-size:32px;letter-spacing:6px;font-weight:bold">%s</p>
  <p>This code expires in 5 minutes.</p>
  <p>Never share this code with anyone. If you didn't request it, you can ignore this email.</p>
</div>`, code)
	return sendEmail(to, subject, body)
}
