// Package models defines the core data structures exchanged with the
// PlanbookAI gateway and persisted in the local fallback store.
package models

import "strings"

// Role restricts navigation and portal access for a user.
type Role string

const (
	// RoleAdmin has full access to the administration portal.
	RoleAdmin Role = "admin"
	// RoleManager manages packages and content through the admin portal.
	RoleManager Role = "manager"
	// RoleStaff curates questions and curricula through the admin portal.
	RoleStaff Role = "staff"
	// RoleTeacher accesses the teacher portal only.
	RoleTeacher Role = "teacher"
)

// ParseRole normalizes a role string read from the gateway or a token.
// Roles are case-insensitive on read but stored as sent.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// User represents an account on the platform.
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	IsActive   bool   `json:"is_active"`
	IsVerified bool   `json:"is_verified"`
	CreatedAt  string `json:"created_at"`
}

// Question is a single exam question from the question bank.
type Question struct {
	ID            string            `json:"id"`
	Subject       string            `json:"subject"`
	Topic         string            `json:"topic"`
	GradeLevel    string            `json:"grade_level"`
	QuestionType  string            `json:"question_type"`
	Difficulty    string            `json:"difficulty"`
	QuestionText  string            `json:"question_text"`
	Options       map[string]string `json:"options,omitempty"`
	CorrectAnswer string            `json:"correct_answer,omitempty"`
	Explanation   string            `json:"explanation,omitempty"`
	Points        float64           `json:"points"`
	Tags          []string          `json:"tags,omitempty"`
	IsPublic      bool              `json:"is_public"`
	IsApproved    bool              `json:"is_approved,omitempty"`
	CreatedBy     string            `json:"created_by"`
	CreatedAt     string            `json:"created_at"`
	UpdatedAt     string            `json:"updated_at,omitempty"`
}

// Exam is an assembled test referencing questions by id.
type Exam struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Subject        string   `json:"subject"`
	GradeLevel     string   `json:"grade_level"`
	Duration       int      `json:"duration"`
	TotalQuestions int      `json:"total_questions"`
	TotalPoints    float64  `json:"total_points"`
	Instructions   string   `json:"instructions,omitempty"`
	Status         string   `json:"status"`
	Questions      []string `json:"questions"`
	CreatedBy      string   `json:"created_by"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at,omitempty"`
}

// Lesson is a lesson plan.
type Lesson struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Subject    string   `json:"subject"`
	GradeLevel string   `json:"grade_level"`
	Topic      string   `json:"topic,omitempty"`
	Duration   int      `json:"duration"`
	Objectives []string `json:"objectives,omitempty"`
	Content    string   `json:"content,omitempty"`
	Activities []string `json:"activities,omitempty"`
	Materials  []string `json:"materials,omitempty"`
	CreatedBy  string   `json:"created_by"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at,omitempty"`
}

// Template is a reusable lesson-plan skeleton.
type Template struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Subject    string         `json:"subject"`
	GradeLevel string         `json:"grade_level"`
	Content    map[string]any `json:"content,omitempty"`
	CreatedAt  string         `json:"created_at"`
}

// Package is a subscription service package.
type Package struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Duration      int      `json:"duration"`
	Features      []string `json:"features,omitempty"`
	Subscriptions int      `json:"subscriptions"`
	IsActive      bool     `json:"is_active"`
	CreatedAt     string   `json:"created_at"`
}

// Curriculum is a curriculum framework entry.
type Curriculum struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Subject     string         `json:"subject"`
	GradeLevel  string         `json:"grade_level"`
	Description string         `json:"description,omitempty"`
	Content     map[string]any `json:"content,omitempty"`
	CreatedAt   string         `json:"created_at"`
}

// MenuItem is one entry of a role-gated navigation menu.
type MenuItem struct {
	// Name is the display label shown in the sidebar.
	Name string `json:"name"`
	// Href is the target route of the entry.
	Href string `json:"href"`
	// Icon names the icon rendered next to the label.
	Icon string `json:"icon,omitempty"`
}

// LoginResponse is the payload returned by POST /auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user,omitempty"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin manager staff teacher"`
}

// QuestionStats summarizes the question bank.
type QuestionStats struct {
	Total        int            `json:"total"`
	BySubject    map[string]int `json:"by_subject"`
	ByDifficulty map[string]int `json:"by_difficulty"`
}

// LessonStats summarizes stored lesson plans.
type LessonStats struct {
	Total     int            `json:"total"`
	BySubject map[string]int `json:"by_subject"`
}

// GradingTask reports the state of an OCR grading task.
type GradingTask struct {
	TaskID  string `json:"task_id"`
	ExamID  string `json:"exam_id,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// GradingResult is one graded answer sheet.
type GradingResult struct {
	StudentName string  `json:"student_name"`
	Score       float64 `json:"score"`
	Total       float64 `json:"total"`
	Detail      string  `json:"detail,omitempty"`
}
