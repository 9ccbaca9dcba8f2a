// File: internal/providers/github/client.go
// Profile lookup provider backed by the GitHub users API. A missing user is
// a normal outcome (nil payload, nil error); only transport or API failures
// surface as errors, and those are treated as degradation upstream.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gogithub "github.com/google/go-github/v58/github"
	"go.uber.org/zap"

	"github.com/xkilldash9x/exposcan/api/schemas"
	"github.com/xkilldash9x/exposcan/internal/config"
)

// Client wraps the go-github client behind the ProfileProvider contract.
type Client struct {
	gh     *gogithub.Client
	logger *zap.Logger
}

// New creates a profile provider. Token is optional (unauthenticated calls
// have a low rate limit but work); BaseURL is only set in tests to point at
// a local fixture server.
func New(cfg config.GitHubConfig, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	gh := gogithub.NewClient(httpClient)
	if cfg.Token != "" {
		gh = gh.WithAuthToken(cfg.Token)
	}
	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid github base url: %w", err)
		}
		gh.BaseURL = base
	}

	return &Client{gh: gh, logger: logger.Named("github")}, nil
}

// Lookup fetches the public profile for a username. Returns (nil, nil) when
// the user does not exist.
func (c *Client) Lookup(ctx context.Context, username string) (*schemas.ProfilePayload, error) {
	user, resp, err := c.gh.Users.Get(ctx, username)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			c.logger.Debug("Profile not found", zap.String("username", username))
			return nil, nil
		}
		return nil, fmt.Errorf("profile lookup for %q failed: %w", username, err)
	}

	payload := &schemas.ProfilePayload{
		Login:       user.GetLogin(),
		Followers:   user.GetFollowers(),
		PublicRepos: user.GetPublicRepos(),
		Bio:         user.GetBio(),
		Location:    user.GetLocation(),
		HTMLURL:     user.GetHTMLURL(),
	}
	if created := user.GetCreatedAt().Time; !created.IsZero() {
		payload.CreatedAt = &created
	}
	return payload, nil
}
