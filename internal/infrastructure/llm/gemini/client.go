package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"halalradar/internal/core/domain"
)

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func New(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) Model() string {
	return c.model
}

// Classify performs exactly one generateContent call and validates the
// model's answer against the closed status enums. Out-of-enum values
// collapse to unknown; Raw carries the response verbatim for the audit log.
func (c *Client) Classify(ctx context.Context, name, category string, samples []domain.ReviewSample) (domain.ComplianceAssessment, error) {
	respText, err := c.generateContent(ctx, buildCompliancePrompt(name, category, samples))
	if err != nil {
		return domain.ComplianceAssessment{}, err
	}

	return parseAssessment(respText)
}

func parseAssessment(respText string) (domain.ComplianceAssessment, error) {
	cleaned := stripCodeFences(respText)

	var parsed struct {
		IsHalal       bool     `json:"isHalal"`
		HalalStatus   string   `json:"halalStatus"`
		AlcoholStatus string   `json:"alcoholStatus"`
		DietaryLabels []string `json:"dietaryLabels"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return domain.ComplianceAssessment{}, domain.WrapError(domain.ErrModelResponse, "parse assessment json", err)
	}

	labels := parsed.DietaryLabels
	if labels == nil {
		labels = []string{}
	}
	return domain.ComplianceAssessment{
		IsHalal:       parsed.IsHalal,
		HalalStatus:   domain.NormalizeHalalStatus(parsed.HalalStatus),
		AlcoholStatus: domain.NormalizeAlcoholStatus(parsed.AlcoholStatus),
		DietaryLabels: labels,
		Raw:           json.RawMessage(cleaned),
	}, nil
}

func (c *Client) generateContent(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini generate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", formatGeminiHTTPError(resp)
	}

	var response struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", domain.WrapError(domain.ErrModelResponse, "generate", fmt.Errorf("no candidates returned"))
	}
	return strings.TrimSpace(response.Candidates[0].Content.Parts[0].Text), nil
}

func formatGeminiHTTPError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("gemini generate status: %s", resp.Status)
	}
	return fmt.Errorf("gemini generate status: %s: %s", resp.Status, msg)
}

func stripCodeFences(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
