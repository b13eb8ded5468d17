package dto

// UploadDeleteRequest identifies a relayed asset by its delivery URL.
type UploadDeleteRequest struct {
	ImageURL string `json:"imageUrl"`
}

// UploadResponse describes the relayed asset metadata returned to the client.
type UploadResponse struct {
	URL       string `json:"url"`
	SizeBytes int64  `json:"size_bytes"`
	MimeType  string `json:"mime_type"`
	Checksum  string `json:"checksum"`
	FileName  string `json:"file_name"`
}
