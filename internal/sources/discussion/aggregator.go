package discussion

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"tubeideas/internal/models"
)

// MaxItems caps the merged discussion list.
const MaxItems = 10

// Board is a single discussion site searchable by topic.
type Board interface {
	Name() string
	Search(ctx context.Context, topic string) ([]models.DiscussionItem, error)
}

// Aggregator searches every board for the first few topics concurrently. A failed
// board/topic pair is logged and skipped.
type Aggregator struct {
	boards []Board
}

func NewAggregator(boards ...Board) *Aggregator {
	return &Aggregator{boards: boards}
}

func (a *Aggregator) FetchDiscussions(ctx context.Context, topics []string) ([]models.DiscussionItem, error) {
	var searchTopics []string
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			searchTopics = append(searchTopics, t)
		}
		if len(searchTopics) == maxSearchTopics {
			break
		}
	}

	results := make([][]models.DiscussionItem, len(a.boards)*len(searchTopics))

	var g errgroup.Group
	for bi, board := range a.boards {
		for ti, topic := range searchTopics {
			slot := bi*len(searchTopics) + ti
			g.Go(func() error {
				items, err := board.Search(ctx, topic)
				if err != nil {
					log.Warn().Err(err).Str("board", board.Name()).Str("topic", topic).Msg("Discussion search failed")
					return nil
				}
				results[slot] = items
				return nil
			})
		}
	}
	_ = g.Wait()

	var all []models.DiscussionItem
	for _, items := range results {
		all = append(all, items...)
	}
	return Merge(all), nil
}

// Merge deduplicates by URL keeping the higher score, sorts by score descending
// (ties keep first-seen order) and caps at MaxItems.
func Merge(items []models.DiscussionItem) []models.DiscussionItem {
	index := make(map[string]int, len(items))
	merged := make([]models.DiscussionItem, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.URL]; ok {
			if item.Score > merged[i].Score {
				merged[i] = item
			}
			continue
		}
		index[item.URL] = len(merged)
		merged = append(merged, item)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	if len(merged) > MaxItems {
		merged = merged[:MaxItems]
	}
	return merged
}
