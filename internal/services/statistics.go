package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techblitz/techblitz-backend/internal/logger"
	"github.com/techblitz/techblitz-backend/internal/repos"
)

var ErrBadStatsRange = errors.New("unsupported statistics range")

type StatsStep string

const (
	StepDay   StatsStep = "day"
	StepWeek  StatsStep = "week"
	StepMonth StatsStep = "month"
)

// StatsChartBucket aggregates a user's answers over one time bucket.
type StatsChartBucket struct {
	Label          string         `json:"label"`
	TotalQuestions int            `json:"total_questions"`
	TagCounts      map[string]int `json:"tag_counts"`
	Tags           []string       `json:"tags"`
}

type StatsSummary struct {
	TotalQuestions    int    `json:"total_questions"`
	TotalTimeTakenMS  int64  `json:"total_time_taken_ms"`
	HighestScoringTag string `json:"highest_scoring_tag"`
	HighestTagCount   int    `json:"highest_tag_count"`
}

type StatisticsService interface {
	// GetStatsChartData buckets the user's answered questions over the range
	// keyed by day, week or month, with per-bucket tag frequencies.
	GetStatsChartData(ctx context.Context, userID uuid.UUID, rangeKey string) (map[string]*StatsChartBucket, error)
	GetStatsSummary(ctx context.Context, userID uuid.UUID, rangeKey string) (*StatsSummary, error)
}

type statisticsService struct {
	db  *gorm.DB
	log *logger.Logger

	answerRepo repos.AnswerRepo
}

func NewStatisticsService(db *gorm.DB, baseLog *logger.Logger, answerRepo repos.AnswerRepo) StatisticsService {
	return &statisticsService{
		db:         db,
		log:        baseLog.With("service", "StatisticsService"),
		answerRepo: answerRepo,
	}
}

// getRange maps a range key like "7d" to its start time and bucket step.
// Longer ranges use coarser steps so the chart stays readable.
func getRange(rangeKey string, now time.Time) (time.Time, StatsStep, error) {
	switch rangeKey {
	case "7d":
		return now.AddDate(0, 0, -7), StepDay, nil
	case "30d":
		return now.AddDate(0, 0, -30), StepWeek, nil
	case "90d":
		return now.AddDate(0, 0, -90), StepWeek, nil
	case "180d":
		return now.AddDate(0, 0, -180), StepMonth, nil
	case "1y":
		return now.AddDate(-1, 0, 0), StepMonth, nil
	default:
		return time.Time{}, "", fmt.Errorf("%w: %q", ErrBadStatsRange, rangeKey)
	}
}

// bucketKey formats the bucket label an answer falls into for the given step.
func bucketKey(t time.Time, step StatsStep) string {
	switch step {
	case StepMonth:
		return t.Format("2006-01")
	case StepWeek:
		// Key by the Sunday that starts the week.
		weekStart := t.AddDate(0, 0, -int(t.Weekday()))
		return weekStart.Format("2006-01-02")
	default:
		return t.Format("Mon, Jan 2")
	}
}

func (s *statisticsService) GetStatsChartData(ctx context.Context, userID uuid.UUID, rangeKey string) (map[string]*StatsChartBucket, error) {
	if userID == uuid.Nil {
		return nil, errors.New("missing required parameter: userID")
	}

	now := time.Now()
	from, step, err := getRange(rangeKey, now)
	if err != nil {
		return nil, err
	}

	answers, err := s.answerRepo.GetByUserInRange(ctx, nil, userID, from, now)
	if err != nil {
		return nil, fmt.Errorf("load answers for statistics: %w", err)
	}

	buckets := make(map[string]*StatsChartBucket)
	for _, answer := range answers {
		key := bucketKey(answer.CreatedAt, step)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &StatsChartBucket{
				Label:     key,
				TagCounts: make(map[string]int),
				Tags:      []string{},
			}
			buckets[key] = bucket
		}
		bucket.TotalQuestions++
		if answer.Question == nil {
			continue
		}
		for _, tag := range answer.Question.Tags {
			if bucket.TagCounts[tag.Name] == 0 {
				bucket.Tags = append(bucket.Tags, tag.Name)
			}
			bucket.TagCounts[tag.Name]++
		}
	}
	for _, bucket := range buckets {
		sort.Strings(bucket.Tags)
	}

	return buckets, nil
}

func (s *statisticsService) GetStatsSummary(ctx context.Context, userID uuid.UUID, rangeKey string) (*StatsSummary, error) {
	if userID == uuid.Nil {
		return nil, errors.New("missing required parameter: userID")
	}

	now := time.Now()
	from, _, err := getRange(rangeKey, now)
	if err != nil {
		return nil, err
	}

	answers, err := s.answerRepo.GetByUserInRange(ctx, nil, userID, from, now)
	if err != nil {
		return nil, fmt.Errorf("load answers for statistics: %w", err)
	}

	summary := &StatsSummary{}
	tagCounts := make(map[string]int)
	for _, answer := range answers {
		summary.TotalQuestions++
		summary.TotalTimeTakenMS += answer.TimeTakenMS
		if answer.Question == nil {
			continue
		}
		for _, tag := range answer.Question.Tags {
			tagCounts[tag.Name]++
		}
	}

	// Ties resolve to the lexicographically smallest tag so the result is
	// stable across runs.
	names := make([]string, 0, len(tagCounts))
	for name := range tagCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if tagCounts[name] > summary.HighestTagCount {
			summary.HighestScoringTag = name
			summary.HighestTagCount = tagCounts[name]
		}
	}

	return summary, nil
}
