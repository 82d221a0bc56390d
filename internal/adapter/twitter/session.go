package twitter

import (
	"errors"
	"net/http"

	"github.com/dghubble/oauth1"
	twitterv2 "github.com/g8rswimmer/go-twitter/v2"

	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/config"
	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/domain/sentiment"
)

// Session is an authenticated connection to the Twitter API
type Session struct {
	client *twitterv2.Client
}

// authorizer satisfies the v2 client's Authorizer interface. Request
// signing already happens in the OAuth1 transport, so nothing is added.
type authorizer struct{}

func (authorizer) Add(req *http.Request) {}

// NewSession exchanges the four process-wide secrets for an authorized API
// client. A missing credential is a setup failure, fatal for the whole run.
func NewSession(cfg config.TwitterConfig) (*Session, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" || cfg.AccessToken == "" || cfg.AccessSecret == "" {
		return nil, &sentiment.SetupError{Err: errors.New("missing twitter credentials")}
	}

	oauthConfig := oauth1.NewConfig(cfg.APIKey, cfg.APISecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessSecret)
	httpClient := oauthConfig.Client(oauth1.NoContext, token)

	client := &twitterv2.Client{
		Authorizer: authorizer{},
		Client:     httpClient,
		Host:       cfg.Host,
	}

	return &Session{client: client}, nil
}
