package assistant

// Run lifecycle statuses reported by the assistant service. A run is either
// still moving (queued/in_progress), done, or terminally dead.
const (
	RunStatusQueued     = "queued"
	RunStatusInProgress = "in_progress"
	RunStatusCompleted  = "completed"
	RunStatusFailed     = "failed"
	RunStatusCancelled  = "cancelled"
	RunStatusExpired    = "expired"
)

// Thread is the remote conversation container created per query lifecycle.
type Thread struct {
	ID string `json:"id"`
}

// Run is one asynchronous execution of the assistant against a thread.
type Run struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ThreadMessage is a single message as returned by the messages endpoint.
// Content arrives as typed blocks; only text blocks are consumed here.
type ThreadMessage struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

type ContentBlock struct {
	Type string      `json:"type"`
	Text TextContent `json:"text"`
}

type TextContent struct {
	Value string `json:"value"`
}

type messageList struct {
	Data []ThreadMessage `json:"data"`
}

type transcription struct {
	Text string `json:"text"`
}
