// collaborator_test.go - Tests for the optional caption collaborator

package main

import (
	"context"
	"errors"
	"testing"
)

// TestNewCollaborator_DisabledWithoutKey: no API key means a no-op
// collaborator, regardless of the model string.
func TestNewCollaborator_DisabledWithoutKey(t *testing.T) {
	for _, key := range []string{"", "   ", "\t"} {
		c := NewCollaborator(key, "gpt-4.1-mini")
		if c.Enabled() {
			t.Errorf("key %q produced an enabled collaborator", key)
		}
	}
}

// TestNewCollaborator_EnabledWithKey picks the default model when none is
// given.
func TestNewCollaborator_EnabledWithKey(t *testing.T) {
	c := NewCollaborator("sk-test", "")
	if !c.Enabled() {
		t.Fatal("collaborator with a key reports disabled")
	}
	if c.model != defaultCollaboratorModel {
		t.Errorf("model %q, expected %q", c.model, defaultCollaboratorModel)
	}
	c = NewCollaborator("sk-test", "gpt-4.1")
	if c.model != "gpt-4.1" {
		t.Errorf("model %q, expected the explicit choice", c.model)
	}
}

// TestDescribeSource_DisabledError: the disabled path fails fast with the
// collaborator sentinel and performs no network IO.
func TestDescribeSource_DisabledError(t *testing.T) {
	c := NewCollaborator("", "")
	desc, err := c.DescribeSource(context.Background(), "tiktok", "clip.mp4")
	if err == nil {
		t.Fatal("disabled collaborator returned a description")
	}
	if !errors.Is(err, ErrCollaborator) {
		t.Errorf("error %v does not wrap ErrCollaborator", err)
	}
	if desc != "" {
		t.Errorf("description %q from a disabled collaborator", desc)
	}
}

// TestDescribeInBackground_DisabledSafe: the fire-and-forget path absorbs
// the disabled error without panicking.
func TestDescribeInBackground_DisabledSafe(t *testing.T) {
	c := NewCollaborator("", "")
	c.describeInBackground("upload", "clip.mp4")
}

// TestGuessPlatform maps known hosts and falls back sensibly.
func TestGuessPlatform(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"", "upload"},
		{"https://www.tiktok.com/@user/video/123", "tiktok"},
		{"https://www.youtube.com/watch?v=abc", "youtube"},
		{"https://youtu.be/abc", "youtube"},
		{"https://www.instagram.com/reel/xyz/", "instagram"},
		{"https://vimeo.com/123456", "vimeo"},
		{"https://twitter.com/u/status/1", "twitter"},
		{"https://x.com/u/status/1", "twitter"},
		{"https://www.facebook.com/watch?v=1", "facebook"},
		{"https://fb.watch/abc/", "facebook"},
		{"https://www.shutterstock.com/video/clip-123", "stock"},
		{"https://www.gettyimages.com/detail/video/1", "stock"},
		{"https://www.pond5.com/stock-footage/1", "stock"},
		{"https://HTTPS.TIKTOK.COM/upper", "tiktok"},
		{"https://example.com/video.mp4", "generic"},
	}
	for _, c := range cases {
		if got := GuessPlatform(c.url); got != c.want {
			t.Errorf("GuessPlatform(%q) = %q, expected %q", c.url, got, c.want)
		}
	}
}
