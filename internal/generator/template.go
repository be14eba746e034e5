package generator

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/tigagency/contracting-packet/internal/model"
)

// fallbackTemplateURLs host the same packet template; tried in order after
// any caller-supplied override URL.
var fallbackTemplateURLs = []string{
	"https://cdn.tigagency.com/forms/TIG_Contracting_Packet.pdf",
	"https://tigagency.github.io/forms/TIG_Contracting_Packet.pdf",
}

// acquireTemplate produces the raw fillable template bytes, or nil when no
// source yields any. First match wins: inlined base64, then the candidate
// URLs. Failures at each step are logged and move on; the caller degrades
// to the generated summary.
func (g *Generator) acquireTemplate(ctx context.Context, req *model.GenerateRequest, log *zap.Logger) []byte {
	if req.TemplateBase64 != "" {
		payload := req.TemplateBase64
		if idx := strings.Index(payload, "base64,"); idx >= 0 {
			payload = payload[idx+len("base64,"):]
		}
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
		if err != nil {
			log.Warn("inlined template is not valid base64, trying URLs", zap.Error(err))
		} else if len(data) > 0 {
			log.Debug("using inlined template", zap.Int("size", len(data)))
			return data
		}
	}

	var candidates []string
	if req.TemplateURL != "" {
		candidates = append(candidates, req.TemplateURL)
	}
	candidates = append(candidates, fallbackTemplateURLs...)

	for _, url := range candidates {
		data, err := g.fetchTemplate(ctx, url)
		if err != nil {
			log.Debug("template fetch failed", zap.String("url", url), zap.Error(err))
			continue
		}
		log.Debug("template fetched", zap.String("url", url), zap.Int("size", len(data)))
		return data
	}
	return nil
}

func (g *Generator) fetchTemplate(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	return data, nil
}
