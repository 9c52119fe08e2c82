// Package advisor asks a text-generation service for portfolio commentary
// and category suggestions. Nothing here returns an error: every failure
// turns into a fixed fallback string.
package advisor

import (
	"context"
	"strings"
	"unicode/utf8"

	"fundfolio/internal/models"

	"github.com/sirupsen/logrus"
)

const (
	FallbackUnconfigured = "AI analysis is not configured: set GEMINI_API_KEY to enable it."
	FallbackUnavailable  = "Sorry, the portfolio analysis is temporarily unavailable. Please try again later."
)

// minSuggestName is the shortest fund name worth asking about.
const minSuggestName = 3

type Advisor interface {
	AnalyzePortfolio(ctx context.Context, assets []models.Asset, recent []models.Transaction) string
	SuggestCategory(ctx context.Context, fundName string) string
}

type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	gen TextGenerator
	log *logrus.Logger
}

// New returns an advisor backed by gen. A nil gen yields an advisor that
// always answers with the unconfigured fallback.
func New(gen TextGenerator, log *logrus.Logger) *Service {
	return &Service{gen: gen, log: log}
}

func (s *Service) Configured() bool { return s.gen != nil }

// AnalyzePortfolio comments on the active assets among assets, using recent
// as context.
func (s *Service) AnalyzePortfolio(ctx context.Context, assets []models.Asset, recent []models.Transaction) string {
	if s.gen == nil {
		return FallbackUnconfigured
	}
	active := make([]models.Asset, 0, len(assets))
	for _, a := range assets {
		if a.IsActive() {
			active = append(active, a)
		}
	}
	text, err := s.gen.GenerateContent(ctx, analysisPrompt(active, recent))
	if err != nil {
		s.log.Errorf("portfolio analysis failed: %v", err)
		return FallbackUnavailable
	}
	text = strings.TrimSpace(text)
	if text == "" {
		s.log.Warn("portfolio analysis returned no text")
		return FallbackUnavailable
	}
	return text
}

// SuggestCategory proposes an investment direction for a fund name, or ""
// when no suggestion is available.
func (s *Service) SuggestCategory(ctx context.Context, fundName string) string {
	fundName = strings.TrimSpace(fundName)
	if s.gen == nil || utf8.RuneCountInString(fundName) < minSuggestName {
		return ""
	}
	text, err := s.gen.GenerateContent(ctx, categoryPrompt(fundName))
	if err != nil {
		s.log.Warnf("category suggestion for %q failed: %v", fundName, err)
		return ""
	}
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}
	return strings.Trim(text, "\"'`*")
}

var _ Advisor = (*Service)(nil)
