package testkit

import (
	"math/rand"
	"time"
)

// SurveyGeneratorConfig configures the survey response generator
type SurveyGeneratorConfig struct {
	Respondents int       `json:"respondents"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	MissingRate float64   `json:"missing_rate"` // chance that an answer is left blank
	Seed        int64     `json:"seed"`
}

// DefaultSurveyConfig returns sensible defaults for survey generation
func DefaultSurveyConfig() SurveyGeneratorConfig {
	return SurveyGeneratorConfig{
		Respondents: 200,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
		MissingRate: 0.05,
		Seed:        42,
	}
}

// weightedChoice is one answer and its relative frequency
type weightedChoice struct {
	answer string
	weight float64
}

// SurveyQuestion is a categorical question with skewed answer weights
type SurveyQuestion struct {
	Header  string
	choices []weightedChoice
}

// SurveyQuestions are the categorical columns the generator fills
var SurveyQuestions = []SurveyQuestion{
	{Header: "Region", choices: []weightedChoice{
		{"Kanto", 0.38}, {"Kansai", 0.24}, {"Chubu", 0.14}, {"Kyushu", 0.1},
		{"Tohoku", 0.07}, {"Hokkaido", 0.05}, {"Shikoku", 0.015}, {"Okinawa", 0.005},
	}},
	{Header: "Plan", choices: []weightedChoice{
		{"Free", 0.55}, {"Standard", 0.3}, {"Premium", 0.15},
	}},
	{Header: "Satisfaction", choices: []weightedChoice{
		{"Very satisfied", 0.2}, {"Satisfied", 0.35}, {"Neutral", 0.25},
		{"Dissatisfied", 0.15}, {"Very dissatisfied", 0.05},
	}},
}

// SurveyResponse is one generated row
type SurveyResponse struct {
	SubmittedAt time.Time
	Answers     []string // parallel to SurveyQuestions; "" is a blank answer
}

// SurveyGenerator generates deterministic survey responses
type SurveyGenerator struct {
	config SurveyGeneratorConfig
	rng    *rand.Rand
}

// NewSurveyGenerator creates a new survey generator
func NewSurveyGenerator(config SurveyGeneratorConfig) *SurveyGenerator {
	return &SurveyGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate produces Respondents rows
func (g *SurveyGenerator) Generate() []SurveyResponse {
	responses := make([]SurveyResponse, g.config.Respondents)
	for i := range responses {
		answers := make([]string, len(SurveyQuestions))
		for q, question := range SurveyQuestions {
			if g.rng.Float64() < g.config.MissingRate {
				continue
			}
			answers[q] = g.pick(question.choices)
		}
		responses[i] = SurveyResponse{
			SubmittedAt: g.randomTimeInRange(g.config.StartDate, g.config.EndDate),
			Answers:     answers,
		}
	}
	return responses
}

// Headers returns the header row matching Rows
func (g *SurveyGenerator) Headers() []string {
	headers := []string{"Submitted"}
	for _, q := range SurveyQuestions {
		headers = append(headers, q.Header)
	}
	return headers
}

// Rows converts responses into workbook rows; the first cell is a time.Time
func Rows(responses []SurveyResponse) [][]interface{} {
	rows := make([][]interface{}, len(responses))
	for i, r := range responses {
		row := []interface{}{r.SubmittedAt}
		for _, a := range r.Answers {
			row = append(row, a)
		}
		rows[i] = row
	}
	return rows
}

func (g *SurveyGenerator) pick(choices []weightedChoice) string {
	total := 0.0
	for _, c := range choices {
		total += c.weight
	}
	x := g.rng.Float64() * total
	for _, c := range choices {
		x -= c.weight
		if x < 0 {
			return c.answer
		}
	}
	return choices[len(choices)-1].answer
}

func (g *SurveyGenerator) randomTimeInRange(start, end time.Time) time.Time {
	span := end.Sub(start)
	if span <= 0 {
		return start
	}
	return start.Add(time.Duration(g.rng.Int63n(int64(span)))).Truncate(time.Minute)
}
