package dto

// DashboardStatsResponse carries the read-only aggregate counters for the
// dashboard view.
type DashboardStatsResponse struct {
	TotalQuestions       int    `json:"totalQuestions"`
	TotalUsers           int    `json:"totalUsers"`
	DailyQuestionsPosted int    `json:"dailyQuestionsPosted"`
	TotalInteractions    int    `json:"totalInteractions"`
	LastPostedDate       string `json:"lastPostedDate"`
	NextScheduledPost    string `json:"nextScheduledPost"`
}

// BotStatusResponse describes the messaging bot's health as reported by the
// backend.
type BotStatusResponse struct {
	Status          string `json:"status"`
	ConnectedGroups int    `json:"connectedGroups"`
	LastMessageAt   string `json:"lastMessageAt,omitempty"`
	Schedule        string `json:"schedule,omitempty"`
}

// BotScheduleRequest updates the bot's posting schedule expression.
type BotScheduleRequest struct {
	Schedule string `json:"schedule" validate:"required"`
}

// TestMessageResponse is the result of POST /bot/test-message.
type TestMessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// TelegramGroupResponse is a discovered or registered destination group.
type TelegramGroupResponse struct {
	ID          string `json:"id"`
	ChatID      string `json:"chatId"`
	Title       string `json:"title"`
	MemberCount int    `json:"memberCount"`
	IsEnabled   bool   `json:"isEnabled"`
}

// GroupListResponse wraps the known destination groups.
type GroupListResponse struct {
	Groups []TelegramGroupResponse `json:"groups"`
}

func (r *GroupListResponse) Normalize() {
	if r.Groups == nil {
		r.Groups = []TelegramGroupResponse{}
	}
}

// UpdateGroupRequest enables or disables a destination group.
type UpdateGroupRequest struct {
	IsEnabled bool `json:"isEnabled"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
