// Package summarize provides the HTTP handler for the video summarization
// endpoint.
package summarize

// Request is the JSON body of a summarization request.
type Request struct {
	VideoURL string `json:"videoUrl" example:"https://www.youtube.com/watch?v=dQw4w9WgXcQ"`
	Locale   string `json:"locale" example:"ko"`
}

// Response is the JSON body of a successful summarization.
type Response struct {
	Summary string `json:"summary" example:"이 영상은 ..."`
}

// ErrorResponse is the JSON body of a failed summarization.
// ReceivedURL is a pointer so the field is present (possibly as an empty
// string) only for input errors and omitted otherwise.
type ErrorResponse struct {
	Error       string  `json:"error" example:"유효한 YouTube 링크를 입력해 주세요."`
	ReceivedURL *string `json:"receivedUrl,omitempty"`
}
