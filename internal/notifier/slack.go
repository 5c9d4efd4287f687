package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jobsweep/jobsweep/internal/model"
	"github.com/jobsweep/jobsweep/internal/render"
)

const defaultPostMessageURL = "https://slack.com/api/chat.postMessage"

// Ensure SlackDelivery implements model.Deliverer.
var _ model.Deliverer = (*SlackDelivery)(nil)

// SlackDelivery posts an aggregated job batch to a Slack channel via
// chat.postMessage. The batch is split into pages of pageSize jobs; the
// first message summarizes the sweep and every page is threaded under it so
// one sweep reads as one conversation.
type SlackDelivery struct {
	token    string
	channel  string
	client   *http.Client
	pageSize int
	maxJobs  int
	window   time.Duration
	logger   *slog.Logger
	baseURL  string
}

// NewSlackDelivery returns a deliverer for the given channel. pageSize <= 0
// falls back to 8 jobs per message, maxJobs <= 0 means no cap.
func NewSlackDelivery(token, channel string, client *http.Client, pageSize, maxJobs int, window time.Duration, logger *slog.Logger) *SlackDelivery {
	if pageSize <= 0 {
		pageSize = 8
	}
	return &SlackDelivery{
		token:    token,
		channel:  channel,
		client:   client,
		pageSize: pageSize,
		maxJobs:  maxJobs,
		window:   window,
		logger:   logger,
		baseURL:  defaultPostMessageURL,
	}
}

// Deliver sends the batch. With no credentials configured it logs and returns
// nil so a sweep can run without Slack. A failed summary message aborts the
// whole delivery (no orphan pages); a failed page is logged and skipped so
// the remaining pages still go out.
func (s *SlackDelivery) Deliver(ctx context.Context, jobs []model.Job) error {
	if s.token == "" || s.channel == "" {
		s.logger.Warn("slack credentials not configured, skipping delivery")
		return nil
	}

	if len(jobs) == 0 {
		_, err := s.post(ctx, message{Channel: s.channel, Text: render.Empty(s.window)})
		if err != nil {
			return fmt.Errorf("post empty-sweep notice: %w", err)
		}
		return nil
	}

	total := len(jobs)
	if s.maxJobs > 0 && total > s.maxJobs {
		s.logger.Info("job list capped", "matched", total, "cap", s.maxJobs)
		jobs = jobs[:s.maxJobs]
	}

	threadTS, err := s.post(ctx, message{Channel: s.channel, Text: render.Summary(total, s.window)})
	if err != nil {
		return fmt.Errorf("post sweep summary: %w", err)
	}

	blocks := render.Jobs(jobs, 0)
	perPage := s.pageSize * render.BlocksPerJob

	pages, failed := 0, 0
	for start := 0; start < len(blocks); start += perPage {
		end := start + perPage
		if end > len(blocks) {
			end = len(blocks)
		}
		pages++

		_, err := s.post(ctx, message{
			Channel:  s.channel,
			Blocks:   blocks[start:end],
			ThreadTS: threadTS,
		})
		if err != nil {
			s.logger.Error("slack page failed, skipping", "page", pages, "error", err)
			failed++
		}
	}

	s.logger.Info("slack delivery complete", "jobs", len(jobs), "pages", pages, "failed_pages", failed)
	return nil
}

// chat.postMessage payload and response types.

type message struct {
	Channel  string         `json:"channel"`
	Text     string         `json:"text,omitempty"`
	Blocks   []render.Block `json:"blocks,omitempty"`
	ThreadTS string         `json:"thread_ts,omitempty"`
}

type postResponse struct {
	OK    bool   `json:"ok"`
	TS    string `json:"ts"`
	Error string `json:"error"`
}

// post sends one chat.postMessage call and returns the message timestamp.
// A single 429 is retried after the server-indicated delay.
func (s *SlackDelivery) post(ctx context.Context, msg message) (string, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("marshal slack message: %w", err)
	}

	resp, err := s.send(ctx, body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		secs, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		resp.Body.Close()
		if secs <= 0 {
			secs = 1
		}
		s.logger.Warn("slack rate limited, retrying", "retry_after_secs", secs)

		select {
		case <-time.After(time.Duration(secs) * time.Second):
		case <-ctx.Done():
			return "", ctx.Err()
		}

		resp, err = s.send(ctx, body)
		if err != nil {
			return "", fmt.Errorf("retry: %w", err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("slack returned %d", resp.StatusCode)
	}

	var pr postResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", fmt.Errorf("decode slack response: %w", err)
	}
	if !pr.OK {
		return "", fmt.Errorf("slack error: %s", pr.Error)
	}
	return pr.TS, nil
}

func (s *SlackDelivery) send(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post to slack: %w", err)
	}
	return resp, nil
}

// SendTestMessage posts a plain text message to verify the integration works.
func (s *SlackDelivery) SendTestMessage(ctx context.Context) error {
	if s.token == "" || s.channel == "" {
		return fmt.Errorf("slack credentials not configured")
	}
	_, err := s.post(ctx, message{
		Channel: s.channel,
		Text:    "👋 jobsweep integration test: if you can read this, delivery is configured.",
	})
	return err
}
