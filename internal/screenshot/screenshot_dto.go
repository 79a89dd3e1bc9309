package screenshot

import "time"

// UploadRequest is assembled by the handler from the multipart form.
type UploadRequest struct {
	TimeEntryID string
	EmployeeID  string
	Permission  bool
	IPAddress   *string
	MACAddress  *string
	ContentType string
	Data        []byte
}

type ScreenshotResponse struct {
	ID          string  `json:"id"`
	TimeEntryID string  `json:"time_entry_id"`
	EmployeeID  string  `json:"employee_id"`
	FileURL     string  `json:"file_url"`
	ContentType string  `json:"content_type"`
	SizeBytes   int64   `json:"size_bytes"`
	Permission  bool    `json:"permission"`
	IPAddress   *string `json:"ip_address"`
	MACAddress  *string `json:"mac_address"`
	CapturedAt  string  `json:"captured_at"`
	CreatedAt   string  `json:"created_at"`
}

func mapToResponse(s *Screenshot) *ScreenshotResponse {
	return &ScreenshotResponse{
		ID:          s.ID.String(),
		TimeEntryID: s.TimeEntryID.String(),
		EmployeeID:  s.EmployeeID.String(),
		FileURL:     s.FileURL,
		ContentType: s.ContentType,
		SizeBytes:   s.SizeBytes,
		Permission:  s.Permission,
		IPAddress:   s.IPAddress,
		MACAddress:  s.MACAddress,
		CapturedAt:  s.CapturedAt.Format(time.RFC3339),
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(rows []Screenshot) []ScreenshotResponse {
	out := make([]ScreenshotResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *mapToResponse(&rows[i]))
	}
	return out
}
