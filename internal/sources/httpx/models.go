package httpx

// Response is the subset of an `httpx -json` record the pipeline reads.
type Response struct {
	Timestamp  string         `json:"timestamp"`
	URL        string         `json:"url"`
	Input      string         `json:"input"`
	Host       string         `json:"host"`
	Scheme     string         `json:"scheme"`
	Port       string         `json:"port"`
	StatusCode int            `json:"status_code"`
	Title      FlexibleString `json:"title,omitempty"`
	Webserver  FlexibleString `json:"webserver,omitempty"`
	Tech       []string       `json:"tech,omitempty"`
	Failed     FlexibleBool   `json:"failed"`
}
