package models

// Create payloads carry validate tags; update payloads use pointers so that
// only supplied fields are replaced.

// FacultyRequest creates a faculty member.
type FacultyRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateFacultyRequest patches a faculty member.
type UpdateFacultyRequest struct {
	Name *string `json:"name"`
}

// GradeRequest creates a grade.
type GradeRequest struct {
	Year     string `json:"year" validate:"required"`
	Branch   string `json:"branch" validate:"required"`
	Section  string `json:"section" validate:"required"`
	Shift    string `json:"shift"`
	Capacity int    `json:"capacity" validate:"gte=0"`
}

// UpdateGradeRequest patches a grade.
type UpdateGradeRequest struct {
	Year     *string `json:"year"`
	Branch   *string `json:"branch"`
	Section  *string `json:"section"`
	Shift    *string `json:"shift"`
	Capacity *int    `json:"capacity" validate:"omitempty,gte=0"`
}

// RoomRequest creates a classroom or lab.
type RoomRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateRoomRequest patches a classroom or lab.
type UpdateRoomRequest struct {
	Name *string `json:"name"`
}

// SubjectRequest creates a subject.
type SubjectRequest struct {
	Grade   string `json:"grade" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Type    string `json:"type"`
	Faculty string `json:"faculty"`
}

// UpdateSubjectRequest patches a subject.
type UpdateSubjectRequest struct {
	Grade   *string `json:"grade"`
	Subject *string `json:"subject"`
	Type    *string `json:"type"`
	Faculty *string `json:"faculty"`
}

// ScheduleEntry is one slot inside a replace-by-grade payload.
type ScheduleEntry struct {
	Subject   string `json:"subject"`
	Faculty   string `json:"faculty"`
	Classroom string `json:"classroom"`
	Day       string `json:"day" validate:"required"`
	Time      string `json:"time" validate:"required"`
}

// ReplaceSchedulesRequest replaces the whole timetable of Grade.
type ReplaceSchedulesRequest struct {
	Grade     string          `json:"grade" validate:"required"`
	Schedules []ScheduleEntry `json:"schedules" validate:"dive"`
}

// UpdateScheduleRequest patches a single timetable entry.
type UpdateScheduleRequest struct {
	Grade     *string `json:"grade"`
	Subject   *string `json:"subject"`
	Faculty   *string `json:"faculty"`
	Classroom *string `json:"classroom"`
	Day       *string `json:"day"`
	Time      *string `json:"time"`
}

// SwapRequestInput creates a swap request. Status is always pending.
type SwapRequestInput struct {
	FromFaculty string `json:"fromFaculty" validate:"required"`
	ToFaculty   string `json:"toFaculty"`
	Grade       string `json:"grade" validate:"required"`
	Day         string `json:"day" validate:"required"`
	Time        string `json:"time" validate:"required"`
}

// LeaveRequest creates a leave request.
type LeaveRequest struct {
	Faculty string `json:"faculty" validate:"required"`
	From    string `json:"from" validate:"required"`
	To      string `json:"to" validate:"required"`
	Reason  string `json:"reason"`
	Status  string `json:"status"`
}

// UpdateLeaveRequest patches a leave request, status included.
type UpdateLeaveRequest struct {
	Faculty *string `json:"faculty"`
	From    *string `json:"from"`
	To      *string `json:"to"`
	Reason  *string `json:"reason"`
	Status  *string `json:"status"`
}

// FeedbackRequest records student feedback.
type FeedbackRequest struct {
	Student   string `json:"student"`
	Grade     string `json:"grade"`
	Message   string `json:"message" validate:"required"`
	Timestamp string `json:"timestamp"`
}

// UpdateFeedbackRequest patches a feedback entry.
type UpdateFeedbackRequest struct {
	Student   *string `json:"student"`
	Grade     *string `json:"grade"`
	Message   *string `json:"message"`
	Timestamp *string `json:"timestamp"`
}
