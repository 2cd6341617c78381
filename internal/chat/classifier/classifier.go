// Package classifier defines the optional scored intent classifier capability
// backed by an external model service.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	commonerrors "farmtech-assist/internal/common/errors"
)

// ConfidenceThreshold is the minimum confidence the engine requires before it
// trusts a classifier prediction over the rule matcher.
const ConfidenceThreshold = 0.70

// Classifier predicts an intent with a confidence score. Implementations must
// be safe for concurrent use.
type Classifier interface {
	Predict(ctx context.Context, text string) (intent string, confidence float64, err error)
}

// HTTPClassifier calls a model service over HTTP. Any transport failure or
// non-200 status is returned as an error; the caller decides how to degrade.
type HTTPClassifier struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClassifier(baseURL string, timeout time.Duration) *HTTPClassifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPClassifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// Predict POSTs the text to the model service and decodes its prediction.
func (c *HTTPClassifier) Predict(ctx context.Context, text string) (string, float64, error) {
	body, err := json.Marshal(predictRequest{Text: text})
	if err != nil {
		return "", 0, fmt.Errorf("encode predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return "", 0, commonerrors.NewClassifierTimeoutError()
		}
		return "", 0, commonerrors.NewClassifierUnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, commonerrors.NewClassifierUnavailableError(fmt.Errorf("classifier returned status %d", resp.StatusCode))
	}

	var pr predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", 0, commonerrors.NewClassifierUnavailableError(fmt.Errorf("decode predict response: %w", err))
	}
	return pr.Intent, pr.Confidence, nil
}
