package report

import (
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/devmarvs/csphead/apperr"
)

// Body is the "csp-report" object user agents POST to report-uri
// endpoints.
type Body struct {
	DocumentURI        string `json:"document-uri"`
	Referrer           string `json:"referrer,omitempty"`
	BlockedURI         string `json:"blocked-uri"`
	ViolatedDirective  string `json:"violated-directive"`
	EffectiveDirective string `json:"effective-directive,omitempty"`
	OriginalPolicy     string `json:"original-policy,omitempty"`
	Disposition        string `json:"disposition,omitempty"`
	StatusCode         int    `json:"status-code,omitempty"`
	ScriptSample       string `json:"script-sample,omitempty"`
	SourceFile         string `json:"source-file,omitempty"`
	LineNumber         int    `json:"line-number,omitempty"`
	ColumnNumber       int    `json:"column-number,omitempty"`
}

// Report is the wire envelope around Body.
type Report struct {
	Body Body `json:"csp-report"`
}

// Received is a stored report together with collector metadata.
type Received struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
	UserAgent  string    `json:"user_agent,omitempty"`
	RemoteAddr string    `json:"remote_addr,omitempty"`
	Body       Body      `json:"body"`
}

// Directive returns the directive the violation is attributed to. Newer
// user agents send effective-directive; older ones only send
// violated-directive, which may carry the whole clause, so its first token
// is used as a fallback.
func (b Body) Directive() string {
	if b.EffectiveDirective != "" {
		return b.EffectiveDirective
	}
	fields := strings.Fields(b.ViolatedDirective)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Parse decodes a report payload. A payload without a csp-report object is
// rejected with an invalid_argument error.
func Parse(data []byte) (*Report, error) {
	var r Report
	if err := sonic.Unmarshal(data, &r); err != nil {
		return nil, apperr.InvalidArgument("malformed report payload", err)
	}
	if r.Body == (Body{}) {
		return nil, apperr.InvalidArgument("payload carries no csp-report body", nil)
	}
	return &r, nil
}
