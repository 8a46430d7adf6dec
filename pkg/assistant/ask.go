package assistant

import (
	"context"
	"time"
)

// NoResponseText is returned by Ask when a run completes but no assistant
// text message can be found on the thread.
const NoResponseText = "No response from assistant"

// Ask performs one full synchronous round trip against the assistant
// service:
//
//  1. Create a new conversation thread.
//  2. Append the user's query to it.
//  3. Start a run of the configured assistant.
//  4. Poll run status at PollInterval up to MaxPollAttempts.
//  5. Fetch the thread's messages and extract the assistant's reply.
//
// Any remote failure aborts the remaining steps. Context augmentation
// (document text, transcripts) is the caller's responsibility; Ask sends the
// query verbatim.
func (c *Client) Ask(ctx context.Context, query string) (string, error) {
	thread, err := c.CreateThread(ctx)
	if err != nil {
		return "", err
	}

	if err := c.AddMessage(ctx, thread.ID, query); err != nil {
		return "", err
	}

	run, err := c.CreateRun(ctx, thread.ID)
	if err != nil {
		return "", err
	}

	if err := c.waitForRun(ctx, thread.ID, run.ID); err != nil {
		return "", err
	}

	messages, err := c.ListMessages(ctx, thread.ID)
	if err != nil {
		return "", err
	}

	// Messages arrive newest first, so the first assistant entry is the
	// latest reply. Only its first text block is consumed; anything else
	// (image blocks, empty content) falls through to the sentinel.
	for _, m := range messages {
		if m.Role != "assistant" {
			continue
		}
		if len(m.Content) > 0 && m.Content[0].Type == "text" {
			return m.Content[0].Text.Value, nil
		}
		break
	}

	return NoResponseText, nil
}

// waitForRun polls until the run completes, dies, or the attempt ceiling is
// exhausted. There is no cancellation beyond ctx; an in-flight run cannot be
// aborted once polling starts.
func (c *Client) waitForRun(ctx context.Context, threadID, runID string) error {
	timer := newPollTimer(c.pollInterval())
	defer timer.Stop()

	for attempt := 0; attempt < c.maxPollAttempts(); attempt++ {
		run, err := c.GetRun(ctx, threadID, runID)
		if err != nil {
			return err
		}

		switch run.Status {
		case RunStatusCompleted:
			return nil
		case RunStatusFailed, RunStatusCancelled, RunStatusExpired:
			return &RunError{Status: run.Status}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.Wait():
		}
	}

	return ErrRunTimeout
}

// pollTimer is a restartable fixed-delay timer.
type pollTimer struct {
	interval time.Duration
	t        *time.Timer
}

func newPollTimer(interval time.Duration) *pollTimer {
	return &pollTimer{interval: interval}
}

func (p *pollTimer) Wait() <-chan time.Time {
	if p.t == nil {
		p.t = time.NewTimer(p.interval)
	} else {
		p.t.Reset(p.interval)
	}
	return p.t.C
}

func (p *pollTimer) Stop() {
	if p.t != nil {
		p.t.Stop()
	}
}
