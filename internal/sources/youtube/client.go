package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"tubeideas/internal/apperrors"
	"tubeideas/internal/models"
)

const apiKeyName = "YOUTUBE_API_KEY"

// URL shapes a channel reference may take.
const (
	KindChannel = "channel"
	KindCustom  = "custom"
	KindUser    = "user"
	KindHandle  = "handle"
)

var channelPatterns = []struct {
	kind string
	re   *regexp.Regexp
}{
	{KindChannel, regexp.MustCompile(`youtube\.com/channel/([a-zA-Z0-9_-]+)`)},
	{KindCustom, regexp.MustCompile(`youtube\.com/c/([a-zA-Z0-9_-]+)`)},
	{KindUser, regexp.MustCompile(`youtube\.com/user/([a-zA-Z0-9_-]+)`)},
	{KindHandle, regexp.MustCompile(`youtube\.com/@([a-zA-Z0-9_.-]+)`)},
}

// ParseChannelURL returns the URL shape and the identifier it carries.
func ParseChannelURL(rawURL string) (kind, identifier string, ok bool) {
	for _, p := range channelPatterns {
		if m := p.re.FindStringSubmatch(rawURL); len(m) == 2 {
			return p.kind, m[1], true
		}
	}
	return "", "", false
}

// Client reads channel metadata and uploads from the YouTube Data API v3.
type Client struct {
	svc *ytapi.Service
}

// New builds a client. With an empty apiKey and no extra options, every call that
// needs the API reports a configuration error.
func New(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" && len(opts) == 0 {
		return &Client{}, nil
	}

	var all []option.ClientOption
	if apiKey != "" {
		all = append(all, option.WithAPIKey(apiKey))
	}
	all = append(all, opts...)

	svc, err := ytapi.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Client{svc: svc}, nil
}

func (c *Client) ready() error {
	if c.svc == nil {
		return apperrors.Config(apiKeyName, "YouTube API key is not configured")
	}
	return nil
}

// ResolveChannelID maps a channel URL to a channel id. /channel/ URLs need no API
// call; handles, custom names and usernames are looked up.
func (c *Client) ResolveChannelID(ctx context.Context, rawURL string) (string, error) {
	kind, identifier, ok := ParseChannelURL(rawURL)
	if !ok {
		return "", apperrors.Input("Could not extract channel ID from URL")
	}
	if kind == KindChannel {
		return identifier, nil
	}
	if err := c.ready(); err != nil {
		return "", err
	}

	var lookups []func() (string, error)
	if kind == KindHandle {
		lookups = append(lookups, func() (string, error) { return c.searchChannel(ctx, "@"+identifier) })
	}
	lookups = append(lookups,
		func() (string, error) { return c.channelByUsername(ctx, identifier) },
		func() (string, error) { return c.searchChannel(ctx, identifier) },
	)

	for _, lookup := range lookups {
		id, err := lookup()
		if err != nil {
			if errors.Is(err, apperrors.ErrRateLimited) {
				return "", err
			}
			log.Warn().Err(err).Str("identifier", identifier).Str("kind", kind).Msg("Channel lookup failed, trying next strategy")
			continue
		}
		if id != "" {
			return id, nil
		}
	}

	return "", apperrors.NotFound("Could not resolve channel from URL")
}

func (c *Client) searchChannel(ctx context.Context, query string) (string, error) {
	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", classify(err, "search channel")
	}
	for _, item := range resp.Items {
		if item.Id != nil && item.Id.ChannelId != "" {
			return item.Id.ChannelId, nil
		}
		if item.Snippet != nil && item.Snippet.ChannelId != "" {
			return item.Snippet.ChannelId, nil
		}
	}
	return "", nil
}

func (c *Client) channelByUsername(ctx context.Context, username string) (string, error) {
	resp, err := c.svc.Channels.List([]string{"id"}).
		ForUsername(username).
		Context(ctx).
		Do()
	if err != nil {
		return "", classify(err, "channel by username")
	}
	if len(resp.Items) == 0 {
		return "", nil
	}
	return resp.Items[0].Id, nil
}

// ChannelInfo returns the channel's id and title.
func (c *Client) ChannelInfo(ctx context.Context, channelID string) (*models.ChannelRef, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	resp, err := c.svc.Channels.List([]string{"snippet"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify(err, "channel info")
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, apperrors.NotFound("Channel not found")
	}

	snippet := resp.Items[0].Snippet
	return &models.ChannelRef{
		ID:          channelID,
		Title:       snippet.Title,
		Description: snippet.Description,
	}, nil
}

// RecentVideos lists up to limit uploads, most recent first.
func (c *Client) RecentVideos(ctx context.Context, channelID string, limit int) ([]models.VideoSummary, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	chResp, err := c.svc.Channels.List([]string{"contentDetails"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify(err, "channel uploads")
	}
	if len(chResp.Items) == 0 {
		return nil, apperrors.NotFound("Channel not found or invalid channel ID")
	}

	details := chResp.Items[0].ContentDetails
	if details == nil || details.RelatedPlaylists == nil || details.RelatedPlaylists.Uploads == "" {
		return nil, apperrors.NotFound("Channel has no uploads playlist")
	}

	plResp, err := c.svc.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(details.RelatedPlaylists.Uploads).
		MaxResults(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify(err, "playlist items")
	}

	videos := make([]models.VideoSummary, 0, len(plResp.Items))
	for _, item := range plResp.Items {
		s := item.Snippet
		if s == nil || s.ResourceId == nil || s.ResourceId.VideoId == "" {
			continue
		}
		title := s.Title
		if title == "" {
			title = "Untitled"
		}
		videos = append(videos, models.VideoSummary{
			ID:          s.ResourceId.VideoId,
			Title:       title,
			Description: s.Description,
			PublishedAt: s.PublishedAt,
			Thumbnail:   thumbnailURL(s.Thumbnails),
		})
	}

	log.Debug().Str("channelID", channelID).Int("count", len(videos)).Msg("Fetched recent videos")
	return videos, nil
}

func thumbnailURL(t *ytapi.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	if t.Default != nil && t.Default.Url != "" {
		return t.Default.Url
	}
	if t.Medium != nil {
		return t.Medium.Url
	}
	return ""
}

func classify(err error, op string) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusForbidden, http.StatusTooManyRequests:
			return apperrors.RateLimited("YouTube API quota exceeded or API key invalid", err)
		case http.StatusNotFound:
			return apperrors.Wrap(apperrors.ErrNotFound, err, "Channel not found")
		}
	}
	return fmt.Errorf("youtube %s: %w", op, err)
}
