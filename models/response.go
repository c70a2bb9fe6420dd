package models

// NextAction names the tool a caller should invoke next and why. Every
// structured payload carries a list of these so callers never have to
// re-derive protocol order from prose.
type NextAction struct {
	Tool   string `json:"tool"`
	Reason string `json:"reason"`
}

// ToolError is the structured error half of a tool response.
type ToolError struct {
	Code        string       `json:"code"`
	Message     string       `json:"message"`
	Missing     []string     `json:"missing,omitempty"`
	NextActions []NextAction `json:"nextActions"`
}

// ToolResult is the uniform response envelope for every tool. Success
// responses fill Narrative/Data/NextActions; error responses fill Error and
// set IsError so callers can branch without parsing text.
type ToolResult struct {
	RequestID   string       `json:"requestId"`
	Narrative   string       `json:"narrative,omitempty"`
	Data        any          `json:"data,omitempty"`
	NextActions []NextAction `json:"nextActions,omitempty"`
	Error       *ToolError   `json:"error,omitempty"`
	IsError     bool         `json:"isError,omitempty"`
}
