package model

// UploadedFile is the backend's view of one uploaded document.
type UploadedFile struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Uploaded string `json:"uploaded,omitempty"`
}

type UploadResponse struct {
	Success bool           `json:"success"`
	Files   []UploadedFile `json:"files"`
	Total   int            `json:"total"`
	Error   string         `json:"error"`
}

type FilesResponse struct {
	Files []UploadedFile `json:"files"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ExcelResponse answers /generate-kdv-excel. File is a backend-relative link.
type ExcelResponse struct {
	Success      bool     `json:"success"`
	Logs         []string `json:"logs"`
	InvoiceCount int      `json:"invoice_count"`
	File         string   `json:"file"`
	Filename     string   `json:"filename"`
	Error        string   `json:"error"`
}

// WebResponse answers the web editor endpoints. URL is a backend-relative link.
type WebResponse struct {
	Success      bool     `json:"success"`
	Logs         []string `json:"logs"`
	URL          string   `json:"url"`
	InvoiceCount int      `json:"invoice_count"`
	Error        string   `json:"error"`
}

type vknRequest struct {
	Vkn string `json:"vkn"`
}
