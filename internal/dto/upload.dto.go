package dto

type UploadResponseDTO struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
}
