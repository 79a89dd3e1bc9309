package timeentry

import "time"

type ClockInRequest struct {
	TaskID     string  `json:"task_id" binding:"required,uuid"`
	IPAddress  *string `json:"ip_address" binding:"omitempty,max=45"`
	MACAddress *string `json:"mac_address" binding:"omitempty,max=17"`
}

// UpdateTimeEntryRequest patches a closed-out timestamp and the network
// metadata. Start time and task are fixed at clock-in; unknown fields in the
// body are ignored.
type UpdateTimeEntryRequest struct {
	EndTime    *time.Time `json:"end_time"`
	IPAddress  *string    `json:"ip_address" binding:"omitempty,max=45"`
	MACAddress *string    `json:"mac_address" binding:"omitempty,max=17"`
}

type TimeEntryResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	TaskID          string  `json:"task_id"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time"`
	IPAddress       *string `json:"ip_address"`
	MACAddress      *string `json:"mac_address"`
	DurationSeconds *int64  `json:"duration_seconds"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func mapToResponse(e *TimeEntry) *TimeEntryResponse {
	resp := &TimeEntryResponse{
		ID:         e.ID.String(),
		EmployeeID: e.EmployeeID.String(),
		TaskID:     e.TaskID.String(),
		StartTime:  e.StartTime.Format(time.RFC3339),
		IPAddress:  e.IPAddress,
		MACAddress: e.MACAddress,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  e.UpdatedAt.Format(time.RFC3339),
	}
	if e.EndTime != nil {
		end := e.EndTime.Format(time.RFC3339)
		resp.EndTime = &end
		seconds := int64(e.Duration() / time.Second)
		resp.DurationSeconds = &seconds
	}
	return resp
}

func mapToListResponse(rows []TimeEntry) []TimeEntryResponse {
	out := make([]TimeEntryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *mapToResponse(&rows[i]))
	}
	return out
}
