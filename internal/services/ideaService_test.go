package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubeideas/internal/models"
)

type stubIdeas struct {
	ideas []models.Idea
	err   error
	calls int
}

func (s *stubIdeas) GenerateIdeas(context.Context, IdeaInput) ([]models.Idea, error) {
	s.calls++
	return s.ideas, s.err
}

func assertComplete(t *testing.T, ideas []models.Idea) {
	t.Helper()
	require.Len(t, ideas, models.IdeaCount)
	for _, idea := range ideas {
		assert.NotEmpty(t, idea.Title)
		assert.NotEmpty(t, idea.ThumbDesign)
		assert.NotEmpty(t, idea.VideoIdea)
	}
}

func titles(ideas []models.Idea) []string {
	out := make([]string, 0, len(ideas))
	for _, idea := range ideas {
		out = append(out, idea.Title)
	}
	return out
}

func TestSynthesizeModelIdeas(t *testing.T) {
	gen := &stubIdeas{ideas: []models.Idea{
		{Title: "1", ThumbDesign: "t", VideoIdea: "v"},
		{Title: "2", ThumbDesign: "t", VideoIdea: "v"},
		{Title: "3", ThumbDesign: "t", VideoIdea: "v"},
		{Title: "4", ThumbDesign: "t", VideoIdea: "v"},
		{Title: "5", ThumbDesign: "t", VideoIdea: "v"},
		{Title: "6", ThumbDesign: "t", VideoIdea: "v"},
	}}

	ideas := NewIdeaService(gen).Synthesize(context.Background(), IdeaInput{Topics: []string{"go"}})
	assertComplete(t, ideas)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, titles(ideas))
}

func TestSynthesizeModelFailureUsesTemplates(t *testing.T) {
	topics := []string{"space", "ai", "robots", "mars", "rockets", "probes"}
	gen := &stubIdeas{err: errors.New("model down")}

	ideas := NewIdeaService(gen).Synthesize(context.Background(), IdeaInput{Topics: topics})
	assertComplete(t, ideas)
	assert.Equal(t, []string{
		"Latest Updates on space",
		"Latest Updates on ai",
		"Latest Updates on robots",
		"Latest Updates on mars",
		"Latest Updates on rockets",
	}, titles(ideas))
	assert.Equal(t, "Bold text on gradient background with relevant icon", ideas[0].ThumbDesign)
	assert.Equal(t, "A comprehensive video covering the latest developments in space, incorporating current trends and audience interests.", ideas[0].VideoIdea)
}

func TestSynthesizeFewTopicsPadsWithGenericList(t *testing.T) {
	gen := &stubIdeas{err: errors.New("model down")}

	ideas := NewIdeaService(gen).Synthesize(context.Background(), IdeaInput{Topics: []string{"space", "trending topics"}})
	assertComplete(t, ideas)
	assert.Equal(t, []string{
		"Latest Updates on space",
		"Latest Updates on trending topics",
		"Latest Updates on general content",
		"Latest Updates on popular videos",
		"Latest Updates on engaging content",
	}, titles(ideas))
}

func TestSynthesizeShortfallTopsUpFromUnusedTopics(t *testing.T) {
	gen := &stubIdeas{ideas: []models.Idea{
		{Title: "Model one", ThumbDesign: "t", VideoIdea: "v"},
		{Title: "Model two"},
	}}

	ideas := NewIdeaService(gen).Synthesize(context.Background(), IdeaInput{Topics: []string{"a", "b", "c", "d"}})
	assertComplete(t, ideas)
	assert.Equal(t, []string{
		"Model one",
		"Model two",
		"Latest on c",
		"Latest on d",
		"Latest on general content",
	}, titles(ideas))
	assert.Equal(t, "Standard thumbnail design", ideas[1].ThumbDesign)
}

func TestSynthesizeShortfallWithMoreIdeasThanTopics(t *testing.T) {
	for n := 2; n < models.IdeaCount; n++ {
		t.Run(fmt.Sprintf("%d ideas", n), func(t *testing.T) {
			var model []models.Idea
			for i := 0; i < n; i++ {
				model = append(model, models.Idea{Title: fmt.Sprintf("Model %d", i), ThumbDesign: "t", VideoIdea: "v"})
			}

			ideas := NewIdeaService(&stubIdeas{ideas: model}).Synthesize(context.Background(), IdeaInput{Topics: []string{"tutorial"}})
			assertComplete(t, ideas)
			assert.Equal(t, "Model 0", ideas[0].Title)
			for i, idea := range ideas[n:] {
				assert.Equal(t, "Latest on "+GenericTopics[i], idea.Title)
			}
		})
	}
}

func TestSynthesizeWithoutTopicsSkipsModel(t *testing.T) {
	gen := &stubIdeas{}

	ideas := NewIdeaService(gen).Synthesize(context.Background(), IdeaInput{})
	assertComplete(t, ideas)
	assert.Zero(t, gen.calls)
	assert.Equal(t, "Latest Updates on general content", ideas[0].Title)
}

func TestTemplateIdeasAllGenericTopics(t *testing.T) {
	ideas := TemplateIdeas(GenericTopics)
	assertComplete(t, ideas)
	assert.Equal(t, "Latest Updates on viral content", ideas[4].Title)
}
