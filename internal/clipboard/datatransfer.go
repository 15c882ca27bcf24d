package clipboard

import "sort"

// Supported MIME types, in order of preference.
const (
	MIMEMarkdown = "text/markdown"
	MIMEPlain    = "text/plain"
)

// DataTransfer holds pasted data keyed by MIME type.
type DataTransfer struct {
	data map[string]string
}

// NewDataTransfer creates an empty data transfer.
func NewDataTransfer() *DataTransfer {
	return &DataTransfer{data: make(map[string]string)}
}

// PlainText creates a data transfer carrying text/plain.
func PlainText(s string) *DataTransfer {
	dt := NewDataTransfer()
	dt.SetData(MIMEPlain, s)
	return dt
}

// Markdown creates a data transfer carrying text/markdown.
func Markdown(s string) *DataTransfer {
	dt := NewDataTransfer()
	dt.SetData(MIMEMarkdown, s)
	return dt
}

// SetData stores data for a MIME type.
func (dt *DataTransfer) SetData(mime, s string) {
	dt.data[mime] = s
}

// GetData returns the data for a MIME type.
func (dt *DataTransfer) GetData(mime string) (string, bool) {
	s, ok := dt.data[mime]
	return s, ok
}

// Types returns the stored MIME types, sorted.
func (dt *DataTransfer) Types() []string {
	types := make([]string, 0, len(dt.data))
	for t := range dt.data {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
