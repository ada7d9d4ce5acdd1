package models

// Image is an optional binary attachment embedded in its owning record.
// Payloads are small enough to live in the row; the ingress layer caps
// request size.
type Image struct {
	Data        []byte `gorm:"column:data"`
	ContentType string `gorm:"column:content_type;size:100"`
	Filename    string `gorm:"column:filename;size:255"`
}

// Present reports whether the record actually carries an image. The media
// codec requires both the payload and the content type, so callers must
// check this before encoding and emit null otherwise.
func (i Image) Present() bool {
	return len(i.Data) > 0 && i.ContentType != ""
}
