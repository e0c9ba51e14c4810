package ast

import "github.com/fearthecowboy/yaml/internal/errcode"

// Document is one parsed (or freshly created) document: its root node
// plus the directive/schema/error state the composer attached.
type Document struct {
	Contents            Node
	SchemaName          string
	DirectivesEndMarker bool
	VersionMajor        int
	VersionMinor        int
	Errors              []*errcode.Error
	Warnings            []*errcode.Error

	// Anchors maps anchor label to the node it was declared on. CreateNode
	// fills it when it mints a label for a shared value and consults it to
	// avoid reusing a label. The composer resolves aliases from its own
	// table and leaves this map empty.
	Anchors map[string]Node
}

// NewDocument returns an empty Document with its Anchors table
// initialized.
func NewDocument() *Document {
	return &Document{Anchors: map[string]Node{}}
}
