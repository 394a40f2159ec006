package request

// FileUpload is one file already read from a multipart body
type FileUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

func (f *FileUpload) Size() int {
	if f == nil {
		return 0
	}
	return len(f.Data)
}
