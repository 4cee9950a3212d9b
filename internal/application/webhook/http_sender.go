package webhook

import (
	"bytes"
	"net/http"

	domainWebhook "github.com/rcarvalho-pb/fiadopay-go/internal/domain/webhook"
)

type HTTPSender struct {
	Client *http.Client
}

func (s *HTTPSender) Send(d *domainWebhook.Delivery) (bool, error) {
	req, err := http.NewRequest(http.MethodPost, d.TargetURL, bytes.NewReader(d.Payload))
	if err != nil {
		return false, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Type", d.EventType)
	req.Header.Set("X-Signature", d.Signature)

	resp, err := s.Client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}
