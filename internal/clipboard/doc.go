// Package clipboard turns pasted data into document content.
//
// Paste converts a DataTransfer into a model.Fragment, announces it on
// the InputTransformation emitter while the selection still marks the
// paste target, and then inserts it in a single document change.
// Markdown is parsed with goldmark; block structure is kept and block
// text is taken from the raw source lines so delimiters such as \[ \]
// survive unescaped.
package clipboard
