package dto

// RecordingMeta is the JSON payload carried in the "data" field of a
// multipart create request.
type RecordingMeta struct {
	Question string `json:"question"`
	Duration int    `json:"duration"`
}

type StatusMessage struct {
	Message string `json:"message"`
}
