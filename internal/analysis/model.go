package analysis

import "time"

// Record is one scored analysis, immutable once created and owned by the
// user who submitted the image.
type Record struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userid"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	ImageName  string    `json:"image"`
	Image      []byte    `json:"-"`
	CreatedAt  time.Time `json:"created"`
}
