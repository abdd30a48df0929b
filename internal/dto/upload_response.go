package dto

type UploadedImage struct {
	LocalPath string `json:"localPath"`
	LocalURL  string `json:"localUrl"`
	CloudURL  string `json:"cloudUrl"`
	PublicID  string `json:"publicId"`
}
