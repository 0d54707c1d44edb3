package models

// IdeaCount is the exact number of ideas every analysis returns.
const IdeaCount = 5

// RecentVideoLimit is how many uploads are fetched per channel.
const RecentVideoLimit = 10

type ChannelRef struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"-"`
}

// VideoSummary is a lightweight projection of an uploaded video.
type VideoSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

type NewsItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// DiscussionItem is a post from a discussion board. Subreddit is set for Reddit
// posts; Source names the board.
type DiscussionItem struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Subreddit string `json:"subreddit"`
	Source    string `json:"source"`
	Score     int    `json:"score"`
}

// Label is the community name shown alongside the title in prompts.
func (d DiscussionItem) Label() string {
	if d.Subreddit != "" {
		return d.Subreddit
	}
	if d.Source != "" {
		return d.Source
	}
	return "unknown"
}

type Idea struct {
	Title       string `json:"title"`
	ThumbDesign string `json:"thumbDesign"`
	VideoIdea   string `json:"videoIdea"`
}

type AnalysisResult struct {
	Channel         ChannelRef       `json:"channel"`
	Videos          []VideoSummary   `json:"videos"`
	Topics          []string         `json:"topics"`
	News            []NewsItem       `json:"news"`
	DiscussionItems []DiscussionItem `json:"discussionItems"`
	Ideas           []Idea           `json:"ideas"`
}

type AnalyzeRequest struct {
	ChannelURL string `json:"channelUrl"`
	ChannelID  string `json:"channelId"`
}
