// Package reniec resolves Peruvian DNI numbers through the apis.net.pe
// registry API.
package reniec

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"telesalud-admin/config"
	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

const serviceName = "reniec"

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewClient(cfg config.ReniecConfig, timeout time.Duration, log *logrus.Logger) repository.IdentityLookup {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      bearer(cfg.APIToken),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// bearer accepts the token with or without its "Bearer " prefix.
func bearer(token string) string {
	token = strings.TrimSpace(token)
	if token == "" || strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return token
	}
	return "Bearer " + token
}

func (c *Client) LookupDNI(ctx context.Context, dni string) (*entity.PersonaDNI, error) {
	endpoint := c.baseURL + "/v2/reniec/dni?numero=" + url.QueryEscape(dni)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warnf("Failed to call DNI lookup: %+v", err)
		return nil, &repository.ExternalLookupError{Service: serviceName, Message: "service unreachable", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &repository.ExternalLookupError{Service: serviceName, StatusCode: resp.StatusCode, Message: "unreadable response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &body)
		if body.Message == "" {
			body.Message = http.StatusText(resp.StatusCode)
		}
		return nil, &repository.ExternalLookupError{Service: serviceName, StatusCode: resp.StatusCode, Message: body.Message}
	}

	var persona entity.PersonaDNI
	if err := json.Unmarshal(raw, &persona); err != nil {
		return nil, &repository.ExternalLookupError{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected response: %v", err),
			Err:        err,
		}
	}
	return &persona, nil
}
