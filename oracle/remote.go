/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Seednode/riddlebox/riddle"
)

const maxResponseSize = 1 << 20

type askRequest struct {
	History []riddle.Message `json:"history"`
	Animal  string           `json:"animal"`
}

// Remote forwards questions to an HTTP endpoint that accepts
// {"history": [...], "animal": "..."} and replies with
// {"content": "...", "proximity": n, "isCorrect": bool}.
type Remote struct {
	url    string
	client *http.Client
}

func NewRemote(url string, timeout time.Duration) *Remote {
	return &Remote{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (r *Remote) Ask(ctx context.Context, history []riddle.Message, target string) (riddle.Answer, error) {
	body, err := json.Marshal(askRequest{History: history, Animal: target})
	if err != nil {
		return riddle.Answer{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return riddle.Answer{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return riddle.Answer{}, fmt.Errorf("post %s: %w", r.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return riddle.Answer{}, fmt.Errorf("post %s: unexpected status %s", r.url, resp.Status)
	}

	var answer riddle.Answer
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&answer); err != nil {
		return riddle.Answer{}, fmt.Errorf("decode response: %w", err)
	}

	return answer, nil
}
