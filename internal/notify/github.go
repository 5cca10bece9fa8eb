package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// GitHubIssues opens an issue per alert on a repository's issues API.
type GitHubIssues struct {
	URL    string // e.g. https://api.github.com/repos/KothaGPT/models/issues
	Token  string
	Client *http.Client
}

func NewGitHubIssues(url, token string) *GitHubIssues {
	if url == "" {
		return nil
	}
	return &GitHubIssues{
		URL:    url,
		Token:  token,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type issuePayload struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels,omitempty"`
}

func (g *GitHubIssues) Send(ctx context.Context, title, text string) error {
	if g == nil || g.URL == "" {
		return errors.New("github issues disabled")
	}
	body, _ := json.Marshal(issuePayload{
		Title:  title,
		Body:   text,
		Labels: []string{"monitoring"},
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if g.Token != "" {
		req.Header.Set("Authorization", "token "+g.Token)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("github issues returned status %d", resp.StatusCode)
	}
	return nil
}
