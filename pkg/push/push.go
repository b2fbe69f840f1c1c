package push

import (
	"encoding/json"
	"fmt"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/sirupsen/logrus"
)

// Sender delivers Web Push notifications using VAPID keys.
type Sender struct {
	publicKey  string
	privateKey string
	subscriber string
}

// NewSender returns nil when no VAPID keys are configured; callers treat a
// nil sender as "push disabled".
func NewSender(publicKey, privateKey, subscriber string) *Sender {
	if publicKey == "" || privateKey == "" {
		logrus.Warn("VAPID keys not configured, web push disabled")
		return nil
	}
	return &Sender{publicKey: publicKey, privateKey: privateKey, subscriber: subscriber}
}

// Payload is the JSON body shown by the browser notification.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon,omitempty"`
}

// Send pushes the payload to a single subscription. Delivery failures are the
// caller's problem to log; they are never fatal.
func (s *Sender) Send(sub *webpush.Subscription, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %v", err)
	}

	resp, err := webpush.SendNotification(body, sub, &webpush.Options{
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             30,
	})
	if err != nil {
		return fmt.Errorf("failed to send push: %v", err)
	}
	defer resp.Body.Close()
	return nil
}
