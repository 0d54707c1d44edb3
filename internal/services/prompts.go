package services

import (
	"fmt"
	"strings"

	"tubeideas/internal/models"
)

const (
	topicSystemPrompt = "You are a content analysis expert. Extract key topics from YouTube content."
	ideaSystemPrompt  = "You are an expert YouTube content strategist who creates engaging video ideas that match channel styles and current trends."

	descriptionExcerptLen = 200
	promptVideoExcerpts   = 5
	promptContextItems    = 5
)

func buildTopicPrompt(videos []models.VideoSummary) string {
	titles := make([]string, 0, len(videos))
	for _, v := range videos {
		titles = append(titles, v.Title)
	}

	var excerpts []string
	for i, v := range videos {
		if i == promptVideoExcerpts {
			break
		}
		excerpts = append(excerpts, truncateRunes(v.Description, descriptionExcerptLen))
	}

	return fmt.Sprintf(`Analyze the following YouTube video titles and descriptions from a channel. Extract the main topics and themes covered. Return a JSON object with a "topics" array containing 5-8 key topics, each as a single short phrase (2-4 words max).

Video Titles:
%s

Video Descriptions (excerpts):
%s

Return a JSON object in this exact format:
{
  "topics": ["topic1", "topic2", "topic3"]
}`, strings.Join(titles, "\n"), strings.Join(excerpts, "\n"))
}

func buildIdeaPrompt(in IdeaInput) string {
	recent := make([]string, 0, len(in.Videos))
	for _, v := range in.Videos {
		recent = append(recent, v.Title)
	}

	var headlines []string
	for i, n := range in.News {
		if i == promptContextItems {
			break
		}
		headlines = append(headlines, n.Title)
	}

	var threads []string
	for i, d := range in.Discussions {
		if i == promptContextItems {
			break
		}
		threads = append(threads, fmt.Sprintf("%s (%s)", d.Title, d.Label()))
	}

	newsBlock := strings.Join(headlines, "\n- ")
	if newsBlock == "" {
		newsBlock = "No recent news found"
	}
	threadBlock := strings.Join(threads, "\n- ")
	if threadBlock == "" {
		threadBlock = "No community discussions found"
	}

	return fmt.Sprintf(`You are a YouTube content strategist. Generate %d video ideas for the channel "%s".

Channel's Recent Video Titles:
- %s

Identified Topics: %s

Relevant News Headlines:
- %s

Relevant Community Discussions:
- %s

Generate %d video ideas that:
1. Match the channel's content style and topics
2. Incorporate current trends from news and community discussions
3. Are engaging and likely to perform well

For each idea, provide:
- TITLE: A compelling YouTube title (same style as the channel's recent videos)
- THUMB DESIGN: Description of thumbnail design elements (colors, text, imagery style)
- VIDEO IDEA: A detailed description of the video concept (2-3 sentences)

Return a JSON object with an "ideas" array, where each idea has "title", "thumbDesign", and "videoIdea" fields.

Example format:
{
  "ideas": [
    {
      "title": "Video Title Here",
      "thumbDesign": "Thumbnail design description",
      "videoIdea": "Detailed video concept description"
    }
  ]
}`,
		models.IdeaCount, in.ChannelTitle,
		strings.Join(recent, "\n- "),
		strings.Join(in.Topics, ", "),
		newsBlock, threadBlock,
		models.IdeaCount)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
