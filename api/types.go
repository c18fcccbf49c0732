package api

import (
	"time"

	"github.com/mentorsphere/mentorsphere-go/store"
)

// Credentials is the login payload sent to the authentication service.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the signup payload. Role must come from the closed
// role set; the backend enforces it too.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AuthResult is the verified user+token pair issued on login/register.
// The token is an opaque credential and is never parsed client-side.
type AuthResult struct {
	User  *store.UserRecord `json:"user"`
	Token string            `json:"token"`
}

// ProfileUpdate is the editable, non-identity slice of the user record.
type ProfileUpdate struct {
	Name       string `json:"name,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Location   string `json:"location,omitempty"`
	Phone      string `json:"phone,omitempty"`
	University string `json:"university,omitempty"`
}

// Course and Module mirror the backend shapes; progress values are
// server-computed.
type Course struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Instructor       string   `json:"instructor"`
	Thumbnail        string   `json:"thumbnail"`
	Duration         string   `json:"duration"`
	TotalModules     int      `json:"totalModules"`
	CompletedModules int      `json:"completedModules"`
	Progress         int      `json:"progress"`
	Category         string   `json:"category"`
	Level            string   `json:"level"`
	Modules          []Module `json:"modules"`
}

type Module struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Score    *int   `json:"score,omitempty"`
}

// ModuleStatusUpdate moves a module between locked, in-progress, and
// completed.
type ModuleStatusUpdate struct {
	Status string `json:"status"`
	Score  *int   `json:"score,omitempty"`
}

type QuizSummary struct {
	TotalQuizzes     int     `json:"totalQuizzes"`
	CompletedQuizzes int     `json:"completedQuizzes"`
	AverageScore     float64 `json:"averageScore"`
	Quizzes          []Quiz  `json:"quizzes"`
}

type Quiz struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Score    *int   `json:"score,omitempty"`
	Passed   bool   `json:"passed"`
}

type ActivityLog struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Type     string    `json:"type"`
	Title    string    `json:"title"`
	Duration int       `json:"duration"`
	Date     time.Time `json:"date"`
	CourseID string    `json:"courseId"`
	Score    *int      `json:"score,omitempty"`
}

type WeeklyActivity struct {
	Day        string `json:"day"`
	StudyTime  int    `json:"studyTime"`
	Activities int    `json:"activities"`
}

// StudentDashboard is the aggregate the student landing view renders.
type StudentDashboard struct {
	Stats          store.UserRecord `json:"stats"`
	Courses        []Course         `json:"courses"`
	RecentActivity []ActivityLog    `json:"recentActivity"`
	WeeklyActivity []WeeklyActivity `json:"weeklyActivity"`
}

// RiskStudent is a mentor-side view of one student. RiskScore and
// RiskLevel are opaque backend outputs consumed as-is.
type RiskStudent struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Avatar         string    `json:"avatar,omitempty"`
	RiskScore      int       `json:"riskScore"`
	RiskLevel      string    `json:"riskLevel"`
	LastActive     time.Time `json:"lastActive"`
	TotalStudyTime int       `json:"totalStudyTime"`
	Courses        []string  `json:"courses,omitempty"`
}

// MentorDashboard is the aggregate the mentor landing view renders.
type MentorDashboard struct {
	TotalStudents  int           `json:"totalStudents"`
	AtRiskStudents int           `json:"atRiskStudents"`
	Students       []RiskStudent `json:"students"`
	Interventions  []Intervention `json:"interventions"`
}

type Intervention struct {
	ID            string     `json:"id"`
	StudentID     string     `json:"studentId"`
	StudentName   string     `json:"studentName"`
	MentorID      string     `json:"mentorId"`
	Type          string     `json:"type"`
	Message       string     `json:"message"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	Response      *string    `json:"response,omitempty"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	Attachments   []string   `json:"attachments,omitempty"`
}

type InterventionRequest struct {
	StudentID     string     `json:"studentId"`
	StudentName   string     `json:"studentName"`
	Type          string     `json:"type"`
	Message       string     `json:"message"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	Attachments   []string   `json:"attachments,omitempty"`
}

type InterventionUpdate struct {
	Status   string  `json:"status"`
	Response *string `json:"response,omitempty"`
}

// Reflection is the AI-generated reflection bundle. All text and scores
// are opaque server outputs; nothing here is computed client-side.
type Reflection struct {
	Daily          DailyReflection `json:"daily"`
	Weekly         WeeklyInsight   `json:"weekly"`
	LearningPath   LearningPath    `json:"learningPath"`
	RiskAssessment RiskAssessment  `json:"riskAssessment"`
}

type DailyReflection struct {
	Date         string   `json:"date"`
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Mood         string   `json:"mood"`
}

type WeeklyInsight struct {
	WeekNumber     int      `json:"weekNumber"`
	TotalStudyTime int      `json:"totalStudyTime"`
	AverageDaily   int      `json:"averageDaily"`
	TopSubjects    []string `json:"topSubjects"`
	Insights       []string `json:"insights"`
	Recommendation string   `json:"recommendation"`
}

type LearningPath struct {
	CurrentPhase        string           `json:"currentPhase"`
	Progress            int              `json:"progress"`
	NextMilestone       string           `json:"nextMilestone"`
	EstimatedCompletion string           `json:"estimatedCompletion"`
	SuggestedTopics     []SuggestedTopic `json:"suggestedTopics"`
}

type SuggestedTopic struct {
	Title    string `json:"title"`
	Priority string `json:"priority"`
	Reason   string `json:"reason"`
}

type RiskAssessment struct {
	Score           int          `json:"score"`
	Level           string       `json:"level"`
	Factors         []RiskFactor `json:"factors"`
	Explanation     string       `json:"explanation"`
	Recommendations []string     `json:"recommendations"`
}

type RiskFactor struct {
	Name   string `json:"name"`
	Value  int    `json:"value"`
	Status string `json:"status"`
}

type Settings struct {
	UserID        string               `json:"userId"`
	Notifications NotificationSettings `json:"notifications"`
	Appearance    AppearanceSettings   `json:"appearance"`
	Privacy       PrivacySettings      `json:"privacy"`
	Learning      LearningSettings     `json:"learning"`
}

type NotificationSettings struct {
	Email          bool `json:"email"`
	Push           bool `json:"push"`
	StudyReminder  bool `json:"studyReminder"`
	WeeklyReport   bool `json:"weeklyReport"`
	MentorMessages bool `json:"mentorMessages"`
	CourseUpdates  bool `json:"courseUpdates"`
	Promotions     bool `json:"promotions"`
}

type AppearanceSettings struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
	FontSize string `json:"fontSize"`
}

type PrivacySettings struct {
	ProfileVisibility string `json:"profileVisibility"`
	ShowActivity      bool   `json:"showActivity"`
	ShowProgress      bool   `json:"showProgress"`
	AllowAnalytics    bool   `json:"allowAnalytics"`
}

type LearningSettings struct {
	DailyGoal      int    `json:"dailyGoal"`
	ReminderTime   string `json:"reminderTime"`
	AutoplayVideos bool   `json:"autoplayVideos"`
	Subtitles      bool   `json:"subtitles"`
}

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
