package domain

import (
	"time"

	"github.com/google/uuid"
)

// CategoryCount is the number of requests in one category.
type CategoryCount struct {
	Category Category
	Total    int
	Resolved int
}

// LevelCount is the number of users currently at a level.
type LevelCount struct {
	Level Level
	Users int
}

// TopContributor ranks users by best answers received.
type TopContributor struct {
	UserID      uuid.UUID
	FullName    string
	Points      int
	BestAnswers int
}

// MonthlyCount is the number of requests created in a calendar month.
type MonthlyCount struct {
	Month    time.Time
	Requests int
	Resolved int
}

// AnalyticsTotals are raw counters loaded from storage.
type AnalyticsTotals struct {
	Users               int
	Requests            int
	Completed           int
	Closed              int
	Active              int
	Responses           int
	BestAnswers         int
	Comments            int
	Likes               int
	Urgent              int
	UrgentResolved      int
	WithDOI             int
	PointsInCirculation int
}

// AnalyticsOverview is the full read-only report shown to staff.
type AnalyticsOverview struct {
	GeneratedAt            time.Time
	Totals                 AnalyticsTotals
	ResolutionRate         float64
	AvgResponsesPerRequest float64
	BestAnswerRate         float64
	AvgCommentsPerRequest  float64
	AvgPointsPerUser       float64
	UrgentResolutionRate   float64
	NormalResolutionRate   float64
	Categories             []CategoryCount
	Levels                 []LevelCount
	TopContributors        []TopContributor
	Monthly                []MonthlyCount
}

// AdminStats are the headline counters of the admin dashboard.
type AdminStats struct {
	Users         int
	Requests      int
	Responses     int
	Comments      int
	Likes         int
	UsersToday    int
	RequestsToday int
}
