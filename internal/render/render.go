package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tubeideas/internal/models"
)

var (
	ColorAccent = lipgloss.Color("212")
	ColorTitle  = lipgloss.Color("86")
	ColorDim    = lipgloss.Color("242")
	ColorBorder = lipgloss.Color("62")
)

const (
	cardWidth    = 72
	maxListItems = 5
)

// Styles holds the Lip Gloss styles used to print an analysis.
type Styles struct {
	Header    lipgloss.Style
	Section   lipgloss.Style
	Topic     lipgloss.Style
	Meta      lipgloss.Style
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	CardLabel lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).MarginBottom(1),
		Section:   lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1),
		Topic:     lipgloss.NewStyle().Foreground(ColorTitle).Padding(0, 1),
		Meta:      lipgloss.NewStyle().Foreground(ColorDim),
		Card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorBorder).Padding(0, 1).Width(cardWidth),
		CardTitle: lipgloss.NewStyle().Bold(true).Foreground(ColorTitle),
		CardLabel: lipgloss.NewStyle().Foreground(ColorDim),
	}
}

// Analysis renders a result as a terminal report.
func Analysis(r *models.AnalysisResult, s Styles) string {
	var b strings.Builder

	b.WriteString(s.Header.Render(fmt.Sprintf("%s (%s)", r.Channel.Title, r.Channel.ID)))
	b.WriteString("\n")
	b.WriteString(s.Meta.Render(fmt.Sprintf("%d recent videos analysed", len(r.Videos))))
	b.WriteString("\n")

	b.WriteString(s.Section.Render("Topics"))
	b.WriteString("\n")
	topics := make([]string, 0, len(r.Topics))
	for _, t := range r.Topics {
		topics = append(topics, s.Topic.Render(t))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, topics...))
	b.WriteString("\n")

	b.WriteString(s.Section.Render("In the news"))
	b.WriteString("\n")
	if len(r.News) == 0 {
		b.WriteString(s.Meta.Render("  nothing found"))
		b.WriteString("\n")
	}
	for i, n := range r.News {
		if i == maxListItems {
			break
		}
		fmt.Fprintf(&b, "  • %s %s\n", n.Title, s.Meta.Render("("+n.Source+")"))
	}

	b.WriteString(s.Section.Render("Discussions"))
	b.WriteString("\n")
	if len(r.DiscussionItems) == 0 {
		b.WriteString(s.Meta.Render("  nothing found"))
		b.WriteString("\n")
	}
	for i, d := range r.DiscussionItems {
		if i == maxListItems {
			break
		}
		fmt.Fprintf(&b, "  • %s %s\n", d.Title, s.Meta.Render(fmt.Sprintf("(%s, %d)", d.Label(), d.Score)))
	}

	b.WriteString(s.Section.Render("Video ideas"))
	b.WriteString("\n")
	for i, idea := range r.Ideas {
		body := lipgloss.JoinVertical(lipgloss.Left,
			s.CardTitle.Render(fmt.Sprintf("%d. %s", i+1, idea.Title)),
			s.CardLabel.Render("Thumbnail: ")+idea.ThumbDesign,
			idea.VideoIdea,
		)
		b.WriteString(s.Card.Render(body))
		b.WriteString("\n")
	}

	return b.String()
}
