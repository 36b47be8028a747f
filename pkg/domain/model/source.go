package model

import "net/url"

// SourceConfig holds the connection settings for one external quality
// source (SonarQube component or Jira board). It is owned by the product
// directory and treated as an immutable value for the duration of a run.
type SourceConfig struct {
	BaseURL      string `json:"base_url" firestore:"base_url"`
	TargetID     string `json:"target_id" firestore:"target_id"`
	AccessToken  string `json:"access_token" firestore:"access_token"`
	UserIdentity string `json:"user_identity,omitempty" firestore:"user_identity,omitempty"`
}

// IsValid reports whether the config is complete enough to attempt a call:
// the base URL must be a syntactically absolute URI and the target
// identifier must be present.
func (c *SourceConfig) IsValid() bool {
	if c == nil || c.TargetID == "" {
		return false
	}
	return c.HasAbsoluteBaseURL()
}

// HasAbsoluteBaseURL reports whether BaseURL parses as an absolute URI.
func (c *SourceConfig) HasAbsoluteBaseURL() bool {
	if c == nil || c.BaseURL == "" {
		return false
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
