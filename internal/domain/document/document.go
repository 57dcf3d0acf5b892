package document

// Document is a caller-supplied OCR'd document (immutable value object).
// A nil content means the text was never extracted; such documents never match.
type Document struct {
	id         string
	content    *string
	docType    string
	uploadedAt string
}

// New creates a Document. content may be nil.
func New(id string, content *string, docType, uploadedAt string) Document {
	var c *string
	if content != nil {
		v := *content
		c = &v
	}
	return Document{id: id, content: c, docType: docType, uploadedAt: uploadedAt}
}

// FromText creates a Document with non-null content.
func FromText(id, content string) Document {
	return New(id, &content, "", "")
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// HasContent reports whether the document carries text.
// An empty string is treated like null.
func (d *Document) HasContent() bool { return d.content != nil && *d.content != "" }

// Content returns the document text, or "" when absent.
func (d *Document) Content() string {
	if d.content == nil {
		return ""
	}
	return *d.content
}

// Type returns the caller-supplied document type, if any.
func (d *Document) Type() string { return d.docType }

// UploadedAt returns the caller-supplied upload timestamp, if any.
func (d *Document) UploadedAt() string { return d.uploadedAt }
