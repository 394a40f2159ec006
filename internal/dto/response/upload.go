package response

type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	MimeType string `json:"mimetype"`
	Size     int    `json:"size"`
}
