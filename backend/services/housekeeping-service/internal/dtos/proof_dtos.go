package dtos

type ProofUploadResponse struct {
	URL      string `json:"url"`
	Stamped  bool   `json:"stamped"`
	Uploaded bool   `json:"uploaded"`
}
