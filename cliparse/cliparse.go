package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultAccounts are the frog accounts served when no allow-list is configured.
var DefaultAccounts = []string{"the-magic-frog", "der-zauberfrosch", "grenouille"}

const (
	DefaultPort             = 3333
	DefaultSteemURL         = "https://api.steemit.com"
	DefaultDelegatorsURL    = "https://uploadbeta.com/api/steemit/delegators/"
	DefaultStoryTag         = "newstory"
	DefaultStoryTitlePrefix = "New Story"
	DefaultFetchConcurrency = 8
)

type Config struct {
	Port             int
	DelegatorsAPIKey string
	DelegatorsURL    string
	SteemURL         string
	Accounts         []string
	StoryTag         string
	StoryTitlePrefix string
	FetchConcurrency int
	UpstreamTimeout  time.Duration
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var accounts string

	fs := flag.NewFlagSet("magic-frog", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.SteemURL, "steem-url", "", "Steem condenser API URL")
	fs.StringVar(&cfg.DelegatorsURL, "delegators-url", "", "Delegator API URL")
	fs.DurationVar(&cfg.UpstreamTimeout, "timeout", -1, "Upstream request timeout (0 disables)")
	fs.IntVar(&cfg.FetchConcurrency, "concurrency", 0, "Parallel reply fetches per request")

	// Game config
	fs.StringVar(&accounts, "accounts", "", "Comma separated account allow-list")
	fs.StringVar(&cfg.StoryTag, "story-tag", "", "Tag that marks the first post of a story")
	fs.StringVar(&cfg.StoryTitlePrefix, "story-prefix", "", "Title prefix that marks the first post of a story")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.DelegatorsAPIKey, "delegators-key", "", "Delegator API key (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.SteemURL == "" {
		cfg.SteemURL = envOr("STEEM_API_URL", DefaultSteemURL)
	}
	if cfg.DelegatorsURL == "" {
		cfg.DelegatorsURL = envOr("DELEGATORS_API_URL", DefaultDelegatorsURL)
	}

	if cfg.UpstreamTimeout < 0 {
		cfg.UpstreamTimeout = 0
		if s := os.Getenv("UPSTREAM_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil || d < 0 {
				return Config{}, errors.New("invalid UPSTREAM_TIMEOUT env variable")
			}
			cfg.UpstreamTimeout = d
		}
	}

	if cfg.FetchConcurrency == 0 {
		if s := os.Getenv("FETCH_CONCURRENCY"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid FETCH_CONCURRENCY env variable")
			}
			cfg.FetchConcurrency = n
		} else {
			cfg.FetchConcurrency = DefaultFetchConcurrency
		}
	}
	if cfg.FetchConcurrency < 1 {
		return Config{}, errors.New("fetch concurrency must be at least 1")
	}

	if accounts == "" {
		accounts = os.Getenv("ACCOUNTS")
	}
	cfg.Accounts = splitAccounts(accounts)
	if len(cfg.Accounts) == 0 {
		cfg.Accounts = append([]string(nil), DefaultAccounts...)
	}

	if cfg.StoryTag == "" {
		cfg.StoryTag = envOr("STORY_TAG", DefaultStoryTag)
	}
	if cfg.StoryTitlePrefix == "" {
		cfg.StoryTitlePrefix = envOr("STORY_TITLE_PREFIX", DefaultStoryTitlePrefix)
	}

	// Secrets - MUST be provided
	if cfg.DelegatorsAPIKey == "" {
		cfg.DelegatorsAPIKey = os.Getenv("DELEGATORS_API_KEY")
	}
	if cfg.DelegatorsAPIKey == "" {
		return Config{}, errors.New("DELEGATORS_API_KEY required (use -delegators-key or env)")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitAccounts(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
