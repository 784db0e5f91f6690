package analyze

// request body for POST /analyze
type Request struct {
	Action string `json:"action"`
	Code   string `json:"code"`
}

// success body for POST /analyze
type Response struct {
	OK     bool   `json:"ok"`
	Result string `json:"result"`
	Demo   bool   `json:"demo"`
}
