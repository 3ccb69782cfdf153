package transport

type UnlockRequest struct {
	Code string `json:"code"`
}

type UserRequest struct {
	User string `json:"user"`
}

type CreateActivityRequest struct {
	Letter string `json:"letter"`
	Name   string `json:"name"`
}

type RenameActivityRequest struct {
	Name string `json:"name"`
}

type FeedbackRequest struct {
	User    string `json:"user"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// PhotosRequest carries photo references (URLs or data URIs) to attach.
type PhotosRequest struct {
	Photos []string `json:"photos"`
}
